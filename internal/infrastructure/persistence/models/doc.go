// Package models contains the GORM persistence models that map to database tables.
// Domain entities carry no GORM tags; each model converts to and from its entity
// with ToDomain and a ...FromDomain constructor.
//
// Tables:
//   - uploaded_files: generated PDFs and other uploads (uploaded_file.go)
//   - users: accounts for the JWT login (user.go)
//
// Postgres schemas are created by the SQL files under migrations/; AllModels
// is only used by AutoMigrate for sqlite development databases.
package models
