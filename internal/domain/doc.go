// Package domain contains the core entities of the task system: users,
// tasks, comments, and the authenticated principal derived from a token.
// Entities validate themselves; persistence and transport concerns live in
// the store and api packages respectively.
package domain
