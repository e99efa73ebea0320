package scene

import (
	"fmt"

	"github.com/san-kum/efield/internal/config"
)

type ErrUnknownPreset struct {
	Name string
}

func (e ErrUnknownPreset) Error() string {
	return fmt.Sprintf("scene: unknown preset %q (available: %v)", e.Name, config.ListPresets())
}
