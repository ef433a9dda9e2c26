// Package models defines the core domain models for the checklist tool.
//
// # Models
//
//   - Document: the persisted root holding every checklist
//   - Checklist: a yes/no question posed by one roster member
//   - Response: one roster member's answer and note on a checklist
//   - Roster: the fixed, ordered set of people who use the tool
//
// Users are identified by short name strings taken from the roster
// (e.g. "JH"). There are no user accounts.
//
// # Shape tolerance
//
// Documents may come from older versions of the tool or from imported files,
// so Checklist.Creator and Checklist.Responses can be missing. Every load
// boundary runs the checklist reconciler so code past that point can rely on
// one response per roster member, in roster order.
package models
