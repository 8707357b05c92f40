package storage

import (
	"fmt"
	"os"
)

// Supported storage drivers.
const (
	DriverDisk  = "disk"
	DriverAzure = "azure"
)

// Config holds storage driver selection and driver-specific parameters.
// Root applies to the disk driver; ContainerName and ConnectionString
// apply to the azure driver.
type Config struct {
	Driver           string `toml:"driver"`
	Root             string `toml:"root"`
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Driver           string
	Root             string
	ContainerName    string
	ConnectionString string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Driver != "" {
		c.Driver = overlay.Driver
	}
	if overlay.Root != "" {
		c.Root = overlay.Root
	}
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
}

func (c *Config) loadDefaults() {
	if c.Driver == "" {
		c.Driver = DriverDisk
	}
	if c.Root == "" {
		c.Root = "uploads"
	}
	if c.ContainerName == "" {
		c.ContainerName = "inspections"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Driver != "" {
		if v := os.Getenv(env.Driver); v != "" {
			c.Driver = v
		}
	}
	if env.Root != "" {
		if v := os.Getenv(env.Root); v != "" {
			c.Root = v
		}
	}
	if env.ContainerName != "" {
		if v := os.Getenv(env.ContainerName); v != "" {
			c.ContainerName = v
		}
	}
	if env.ConnectionString != "" {
		if v := os.Getenv(env.ConnectionString); v != "" {
			c.ConnectionString = v
		}
	}
}

func (c *Config) validate() error {
	switch c.Driver {
	case DriverDisk:
		if c.Root == "" {
			return fmt.Errorf("root required for disk driver")
		}
	case DriverAzure:
		if c.ContainerName == "" {
			return fmt.Errorf("container_name required for azure driver")
		}
		if c.ConnectionString == "" {
			return fmt.Errorf("connection_string required for azure driver")
		}
	default:
		return fmt.Errorf("driver must be %q or %q", DriverDisk, DriverAzure)
	}
	return nil
}
