package redisx

import "fmt"

const ns = "boxoffice:v1"

// KeyShowAvailability caches the free-seat listing of one show time. The slot
// argument is the show time in its wire form (MM-DD-YYYY HH:mm).
func KeyShowAvailability(slot string) string {
	return fmt.Sprintf("%s:show:%s:availability", ns, slot)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func ChannelShowsChanged() string {
	return ns + ":shows:changed"
}
