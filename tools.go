//go:build tools

package tools

import (
	_ "github.com/air-verse/air"
)
