package serial

// DefaultBaud is the line speed of the bootloader.
const DefaultBaud = 115200

type config struct {
	baud       int
	evenParity bool
}

func defaultConfig() config {
	return config{
		baud:       DefaultBaud,
		evenParity: true,
	}
}

// Option is a functional option for configuring a Port.
type Option func(*config)

// WithBaud sets the line speed. Non-positive values are ignored.
func WithBaud(baud int) Option {
	return func(c *config) {
		if baud > 0 {
			c.baud = baud
		}
	}
}

// WithEvenParity enables or disables the even parity bit. Default is enabled.
func WithEvenParity(enabled bool) Option {
	return func(c *config) {
		c.evenParity = enabled
	}
}
