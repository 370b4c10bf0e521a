// Package preset fetches generation presets from local paths, git
// repositories or HTTP servers.
package preset

import (
	"context"
	"fmt"
	"os"

	getter "github.com/hashicorp/go-getter"

	"github.com/OCharnyshevich/regiongen/internal/config"
	"github.com/OCharnyshevich/regiongen/pkg/region"
)

// Fetch downloads the single preset file at src to dst and loads it. src is
// any go-getter address, for example
// "git::https://example.com/presets.git//islands.yaml" or a relative path.
func Fetch(ctx context.Context, src, dst string) (*config.Config, error) {
	pwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("fetch preset: %w", err)
	}

	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return nil, fmt.Errorf("fetch preset %s: %w: %w", src, region.ErrIO, err)
	}

	cfg, err := config.Load(dst)
	if err != nil {
		return nil, fmt.Errorf("preset %s: %w", src, err)
	}
	return cfg, nil
}
