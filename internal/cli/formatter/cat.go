package formatter

import (
	"strings"

	"github.com/alexanderramin/cattimer/internal/domain"
)

var workCat = []string{
	` /\_/\  `,
	`( o.o ) `,
	` > ^ <  `,
	`/|_|_|\ `,
}

var breakCat = []string{
	` /\_/\  `,
	`( -.- ) `,
	` > ~ <  z`,
	`(_____)  `,
}

// CatArt maps an avatar reference to ASCII art. Unknown references get
// the working cat.
func CatArt(ref string) string {
	lines := workCat
	if ref == domain.AvatarBreak {
		lines = breakCat
	}
	return strings.Join(lines, "\n")
}
