//go:build noebiten

package easyplot

import (
	"errors"

	"github.com/opd-ai/go-easyplot/internal/scene"
)

// errNoWindow is returned by Start in noebiten builds unless Headless is set.
var errNoWindow = errors.New("built without window support (noebiten); use Headless")

func (p *plotImpl) newWindowHost(*scene.Scene) (host, error) {
	return nil, errNoWindow
}
