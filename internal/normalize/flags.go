package normalize

import (
	"strings"

	"gopkg.in/guregu/null.v3"
)

// EncodeFlag maps a two-valued text label to 0/1. Already-numeric "0"/"1"
// pass through. ok is false for anything else, including missing values.
func EncodeFlag(v null.String) (int64, bool) {
	if !v.Valid {
		return 0, false
	}
	switch strings.ToLower(strings.TrimSpace(v.String)) {
	case "sim", "s", "1":
		return 1, true
	case "nao", "não", "n", "0":
		return 0, true
	default:
		return 0, false
	}
}
