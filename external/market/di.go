package market

import (
	"time"

	"github.com/rentlab/lotclone/internal/config"
	"github.com/rentlab/lotclone/internal/market"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (market.Client, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewHTTPClient(c.MarketBaseURL, c.MarketAuthToken, time.Duration(c.MarketTimeoutSec)*time.Second), nil
	})
}
