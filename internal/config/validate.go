package config

import "fmt"

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateSdi(); err != nil {
		return err
	}
	return c.validateLogLevel()
}

func (c *Config) validateOutput() error {
	if c.Output.Width <= 0 || c.Output.Height <= 0 {
		return fmt.Errorf("output resolution %dx%d is invalid", c.Output.Width, c.Output.Height)
	}
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen geometry %dx%d is invalid", c.Screen.Width, c.Screen.Height)
	}
	return nil
}

func (c *Config) validateSdi() error {
	if c.Sdi.FillDevice == c.Sdi.KeyDevice {
		return fmt.Errorf("sdi fill_device and key_device must differ, both are %d", c.Sdi.FillDevice)
	}
	if c.Sdi.FillDevice < 0 || c.Sdi.KeyDevice < 0 {
		return fmt.Errorf("sdi device indexes must be non-negative (fill=%d key=%d)", c.Sdi.FillDevice, c.Sdi.KeyDevice)
	}
	if c.Sdi.FrameRateNum <= 0 || c.Sdi.FrameRateDen <= 0 {
		return fmt.Errorf("sdi frame rate %d/%d is invalid", c.Sdi.FrameRateNum, c.Sdi.FrameRateDen)
	}
	if c.Sdi.KeyerLevel < 0 || c.Sdi.KeyerLevel > 255 {
		return fmt.Errorf("sdi keyer_level %d out of range 0..255", c.Sdi.KeyerLevel)
	}
	return nil
}

func (c *Config) validateLogLevel() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel)
}
