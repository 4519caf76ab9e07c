// Package config manages user-level settings stored at
// ~/.create-farm-app/config.yaml. Settings can also come from FARM_* environment
// variables. They choose the external commands each setup task runs and let a
// packaged install point at a template tree in a non-default location.
package config
