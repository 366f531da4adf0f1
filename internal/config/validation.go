package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateServer()...)
	errors = append(errors, c.validateCatalog()...)

	if c.Catalog.ResolvedFormat() == FormatSQL {
		errors = append(errors, c.validateDatabase()...)
	}

	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateServer() ValidationErrors {
	var errors ValidationErrors

	if c.Server.Addr == "" {
		errors = append(errors, ValidationError{
			Field:   "server.addr",
			Message: "addr is required",
		})
	}

	if c.Server.MaxUploadMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "server.max_upload_mb",
			Message: "max_upload_mb must be positive",
		})
	}

	if c.Server.ReadTimeoutSeconds < 0 || c.Server.WriteTimeoutSeconds < 0 || c.Server.ShutdownTimeoutSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "server.timeouts",
			Message: "timeouts cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateCatalog() ValidationErrors {
	var errors ValidationErrors

	validFormats := map[string]bool{FormatAuto: true, FormatXLSX: true, FormatCSV: true, FormatSQL: true}
	if !validFormats[c.Catalog.Format] {
		errors = append(errors, ValidationError{
			Field:   "catalog.format",
			Message: "format must be 'xlsx', 'csv' or 'sql'",
		})
	}

	if c.Catalog.ResolvedFormat() != FormatSQL && c.Catalog.Source == "" {
		errors = append(errors, ValidationError{
			Field:   "catalog.source",
			Message: "source is required for file formats",
		})
	}

	cols := map[string]string{
		"catalog.columns.id":    c.Catalog.Columns.ID,
		"catalog.columns.name":  c.Catalog.Columns.Name,
		"catalog.columns.owned": c.Catalog.Columns.Owned,
	}
	for _, field := range []string{"catalog.columns.id", "catalog.columns.name", "catalog.columns.owned"} {
		if strings.TrimSpace(cols[field]) == "" {
			errors = append(errors, ValidationError{
				Field:   field,
				Message: "column name is required",
			})
		}
	}

	return errors
}

func (c *Config) validateDatabase() ValidationErrors {
	var errors ValidationErrors
	db := &c.Database

	switch db.Driver {
	case "mysql":
		if db.Host == "" {
			errors = append(errors, ValidationError{
				Field:   "database.host",
				Message: "host is required",
			})
		}
		if db.Port <= 0 || db.Port > 65535 {
			errors = append(errors, ValidationError{
				Field:   "database.port",
				Message: "port must be between 1 and 65535",
			})
		}
		if db.User == "" {
			errors = append(errors, ValidationError{
				Field:   "database.user",
				Message: "user is required",
			})
		}
		if db.Database == "" {
			errors = append(errors, ValidationError{
				Field:   "database.database",
				Message: "database name is required",
			})
		}
		validTLS := map[string]bool{"disable": true, "preferred": true, "required": true, "": true}
		if !validTLS[db.TLS] {
			errors = append(errors, ValidationError{
				Field:   "database.tls",
				Message: "tls must be 'disable', 'preferred', or 'required'",
			})
		}
	case "sqlite":
		if db.Path == "" {
			errors = append(errors, ValidationError{
				Field:   "database.path",
				Message: "path is required for sqlite",
			})
		}
	default:
		errors = append(errors, ValidationError{
			Field:   "database.driver",
			Message: "driver must be 'mysql' or 'sqlite'",
		})
	}

	if db.Table == "" {
		errors = append(errors, ValidationError{
			Field:   "database.table",
			Message: "table is required",
		})
	}

	if db.MaxConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   "database.max_connections",
			Message: "max_connections cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
