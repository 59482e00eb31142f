// Package config manages user-level settings stored at ~/.wyle/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the template root override and the dependency-cache directory name that
// is skipped while copying templates.
package config
