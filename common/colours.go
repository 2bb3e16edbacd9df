package common

import "github.com/diamondburned/arikawa/v3/discord"

// Embed colours
const (
	ColourBlue   discord.Color = 0x3498DB
	ColourRed    discord.Color = 0xE74C3C
	ColourGreen  discord.Color = 0x2ECC71
	ColourGold   discord.Color = 0xF1C40F
	ColourPurple discord.Color = 0x9B59B6
)
