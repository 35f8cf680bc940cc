package parameter

// Tile Layout
const (
	// TileWidth is the cell width of one tile
	TileWidth = 5

	// TileHeight is three rows per half plus the divider
	TileHeight = 7

	// TileGap is the blank columns between tiles
	TileGap = 1

	// RowGap is the blank rows between tile rows when tiles wrap
	RowGap = 1

	// TopMargin is the rows above the first tile row
	TopMargin = 1

	// BottomMargin reserves the status line
	BottomMargin = 1
)

// Status Line
const (
	// StatusHelp is the key summary shown on the left of the status line
	StatusHelp = "j/k flip  h/l focus  r shuffle  0 reset  m mute  q quit"

	// AudioStr marks active sound on the status line
	AudioStr = "♫ "

	// MutedStr marks muted sound
	MutedStr = "- "
)

// Shuffle
const (
	// ShuffleStagger is the frames between successive tiles starting a shuffle
	ShuffleStagger = 3
)
