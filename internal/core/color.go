package core

// Color is the foreground color of a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Palette colors. ColorDefault leaves the terminal foreground untouched.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Role colors shared by all games so the cabinets look alike.
const (
	ColorActor    = ColorBrightCyan
	ColorHazard   = ColorBrightRed
	ColorObstacle = ColorOrange
	ColorPickup   = ColorBrightYellow
	ColorShield   = ColorBrightBlue
	ColorSlow     = ColorBrightMagenta
	ColorGround   = ColorGray
	ColorHUD      = ColorWhite
	ColorParticle = ColorYellow
)
