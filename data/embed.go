package data

import (
	_ "embed"
)

//go:embed initdb/mariadb/001-ddl-database.sql
var InitdbMariaDBDatabase string
