package session

import (
	"github.com/rentlab/lotclone/internal/chat"
	"github.com/rentlab/lotclone/internal/config"
	"github.com/rentlab/lotclone/internal/market"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Store, error) {
		return NewStore(), nil
	})
	do.Provide(injector, func(i do.Injector) (*Manager, error) {
		cfg := do.MustInvoke[*config.Config](i)
		ct := do.MustInvoke[chat.Client](i)
		mk := do.MustInvoke[market.Client](i)
		store := do.MustInvoke[*Store](i)
		return NewManager(cfg, ct, mk, store), nil
	})
}
