// Package service contains the business logic for tasks and comments:
// the cache-aside task repository and the task/comment services that gate
// every operation through the authorization policy. Every operation takes
// the authenticated principal as an explicit parameter.
package service
