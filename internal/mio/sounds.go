package mio

// soundNames indexes the built-in sound effects by effect number.
var soundNames = [...]string{
	"explosion", "glass", "gong", "spring", "pistol", "slice",
	"camera", "splash", "correct", "incorrect", "switch", "input",
	"falling", "wiggle", "rising", "victory", "batting", "swing",
	"impact", "kick", "racquet", "bowling", "sunk_putt", "whistle",
	"frying_pan", "bell", "knife_chop", "mobile_phone", "razor", "mobile_phone",
	"popped_cork", "water", "sneeze", "snap", "munching", "gulp",
	"punch", "foot_stamp", "gasp", "applause", "cat", "big_dog",
	"pig", "small_dog", "wolf", "crow", "tiger", "wing_flap",
	"baby", "giggle", "scream", "too_bad", "kung_fu", "lets_fight",
	"cheering", "booing", "mario_jump", "coin", "power_up", "power_down",
	"shell_kick", "cannon", "struck", "barrel_hop",
}
