package model

import "time"

// WebApp represents a web application that can be mounted on a site path.
// Its directive describes how the web server must serve it.
type WebApp struct {
	ID        string
	Name      string
	AccountID string
	Type      string // e.g. "static", "php-fpm", "uwsgi"

	// Directive is the declarative serving directive of this application.
	Directive Directive

	// DataDir is the filesystem home of the application's content.
	DataDir string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Directive is a declarative (name, args) pair describing one piece of web
// server configuration behavior for a path.
type Directive struct {
	Name string
	Args []string
}
