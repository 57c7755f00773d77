package config

const (
	defaultOutputWidth  = 1920
	defaultOutputHeight = 1080
	defaultFrameRateNum = 30000
	defaultFrameRateDen = 1001
	defaultKeyerLevel   = 255
	defaultLogLevel     = "info"
)

func (c *Config) applyDefaults() {
	if c.Output.Width == 0 {
		c.Output.Width = defaultOutputWidth
	}
	if c.Output.Height == 0 {
		c.Output.Height = defaultOutputHeight
	}
	if c.Screen.Width == 0 {
		c.Screen.Width = c.Output.Width
	}
	if c.Screen.Height == 0 {
		c.Screen.Height = c.Output.Height
	}
	if c.Sdi.FrameRateNum == 0 {
		c.Sdi.FrameRateNum = defaultFrameRateNum
	}
	if c.Sdi.FrameRateDen == 0 {
		c.Sdi.FrameRateDen = defaultFrameRateDen
	}
	if c.Sdi.KeyDevice == 0 && c.Sdi.FillDevice == 0 {
		c.Sdi.KeyDevice = 1
	}
	if c.Sdi.KeyerLevel == 0 {
		c.Sdi.KeyerLevel = defaultKeyerLevel
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
}
