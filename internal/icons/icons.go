// Package icons holds the fixed catalog of category icons and the color
// palette offered by the UI. Categories reference icons by name and colors
// by hex string, so both are validated here before anything is persisted.
package icons

import "regexp"

type Icon struct {
	Name  string `json:"name"`
	Group string `json:"group"`
}

const (
	GroupShopping  = "Shopping"
	GroupFood      = "Food & Drink"
	GroupTransport = "Transport"
	GroupHome      = "Home & Utilities"
	GroupHealth    = "Health"
	GroupLeisure   = "Entertainment"
)

// All lists every selectable icon in display order, grouped the way the
// picker renders them.
var All = []Icon{
	{Name: "ShoppingCart", Group: GroupShopping},
	{Name: "ShoppingBag", Group: GroupShopping},
	{Name: "Store", Group: GroupShopping},
	{Name: "Gift", Group: GroupShopping},
	{Name: "Utensils", Group: GroupFood},
	{Name: "Coffee", Group: GroupFood},
	{Name: "Pizza", Group: GroupFood},
	{Name: "Wine", Group: GroupFood},
	{Name: "Car", Group: GroupTransport},
	{Name: "Bus", Group: GroupTransport},
	{Name: "Train", Group: GroupTransport},
	{Name: "Plane", Group: GroupTransport},
	{Name: "Home", Group: GroupHome},
	{Name: "Lightbulb", Group: GroupHome},
	{Name: "Wifi", Group: GroupHome},
	{Name: "Smartphone", Group: GroupHome},
	{Name: "Stethoscope", Group: GroupHealth},
	{Name: "Heart", Group: GroupHealth},
	{Name: "Dumbbell", Group: GroupHealth},
	{Name: "Tv", Group: GroupLeisure},
	{Name: "Music", Group: GroupLeisure},
	{Name: "Film", Group: GroupLeisure},
	{Name: "Gamepad", Group: GroupLeisure},
}

// Palette is the suggested color swatch set. Custom hex colors outside the
// palette are also accepted, see ValidColor.
var Palette = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEEAD",
	"#D4A5A5", "#9B5DE5", "#F15BB5", "#00BBF9", "#00F5D4",
	"#FEE440", "#8AC926", "#FF99C8", "#6A4C93", "#B5179E",
}

var byName = make(map[string]Icon, len(All))

func init() {
	for _, ic := range All {
		byName[ic.Name] = ic
	}
}

func Resolve(name string) (Icon, bool) {
	ic, ok := byName[name]
	return ic, ok
}

func Valid(name string) bool {
	_, ok := byName[name]
	return ok
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func ValidColor(color string) bool {
	return hexColor.MatchString(color)
}
