package hw

import "image/color"

// SystemPalette holds the 64 colors the NES can output.
var SystemPalette = [64]color.RGBA{
	{84, 84, 84, 0xFF}, {0, 30, 116, 0xFF}, {8, 16, 144, 0xFF}, {48, 0, 136, 0xFF},
	{68, 0, 100, 0xFF}, {92, 0, 48, 0xFF}, {84, 4, 0, 0xFF}, {60, 24, 0, 0xFF},
	{32, 42, 0, 0xFF}, {8, 58, 0, 0xFF}, {0, 64, 0, 0xFF}, {0, 60, 0, 0xFF},
	{0, 50, 60, 0xFF}, {0, 0, 0, 0xFF}, {0, 0, 0, 0xFF}, {0, 0, 0, 0xFF},
	{152, 150, 152, 0xFF}, {8, 76, 196, 0xFF}, {48, 50, 236, 0xFF}, {92, 30, 228, 0xFF},
	{136, 20, 176, 0xFF}, {160, 20, 100, 0xFF}, {152, 34, 32, 0xFF}, {120, 60, 0, 0xFF},
	{84, 90, 0, 0xFF}, {40, 114, 0, 0xFF}, {8, 124, 0, 0xFF}, {0, 118, 40, 0xFF},
	{0, 102, 120, 0xFF}, {0, 0, 0, 0xFF}, {0, 0, 0, 0xFF}, {0, 0, 0, 0xFF},
	{236, 238, 236, 0xFF}, {76, 154, 236, 0xFF}, {120, 124, 236, 0xFF}, {176, 98, 236, 0xFF},
	{228, 84, 236, 0xFF}, {236, 88, 180, 0xFF}, {236, 106, 100, 0xFF}, {212, 136, 32, 0xFF},
	{160, 170, 0, 0xFF}, {116, 196, 0, 0xFF}, {76, 208, 32, 0xFF}, {56, 204, 108, 0xFF},
	{56, 180, 204, 0xFF}, {60, 60, 60, 0xFF}, {0, 0, 0, 0xFF}, {0, 0, 0, 0xFF},
	{236, 238, 236, 0xFF}, {168, 204, 236, 0xFF}, {188, 188, 236, 0xFF}, {212, 178, 236, 0xFF},
	{236, 174, 236, 0xFF}, {236, 174, 212, 0xFF}, {236, 180, 176, 0xFF}, {228, 196, 144, 0xFF},
	{204, 210, 120, 0xFF}, {180, 222, 120, 0xFF}, {168, 226, 144, 0xFF}, {152, 226, 180, 0xFF},
	{160, 214, 228, 0xFF}, {160, 162, 160, 0xFF}, {0, 0, 0, 0xFF}, {0, 0, 0, 0xFF},
}
