// Package api contains the HTTP handlers, request/response models, and
// error mapping for the task system's REST surface. Handlers decode and
// validate payloads, pull the authenticated principal from the request
// context, and delegate all decisions to the service layer.
package api
