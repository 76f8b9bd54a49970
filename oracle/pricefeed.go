package oracle

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ericlagergren/decimal"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"gitlab.com/tierpass-exchange/ledger_api/conv"
	"gitlab.com/tierpass-exchange/ledger_api/lib/httpagent"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FeedDecimals is the fixed number of implied decimals in the raw feed price
const FeedDecimals = 5

// ErrOracleUnavailable is returned when the feed cannot be reached or reports
// a non positive price. Callers must abort the enclosing request, never retry
// and never divide by the broken price.
var ErrOracleUnavailable = errors.New("ORACLE_UNAVAILABLE")

// Quote is a single price feed reading
type Quote struct {
	Price     *decimal.Big
	Timestamp time.Time
	Decimals  uint8
}

// PriceFeed is the external price feed collaborator
type PriceFeed interface {
	GetCurrentPrice() (Quote, error)
}

type feedResponse struct {
	Price     string `json:"price"`
	Timestamp int64  `json:"timestamp"`
}

// App fetches the native currency price from an external HTTP feed
type App struct {
	url  string
	lock *sync.RWMutex
}

// NewApp create a new price feed client for the given endpoint
func NewApp(url string) *App {
	return &App{
		url:  url,
		lock: &sync.RWMutex{},
	}
}

// URL returns the configured feed endpoint
func (app *App) URL() string {
	app.lock.RLock()
	defer app.lock.RUnlock()
	return app.url
}

// SetURL repoints the feed client at a new endpoint
func (app *App) SetURL(url string) {
	app.lock.Lock()
	app.url = url
	app.lock.Unlock()
}

// GetCurrentPrice returns the latest feed reading
func (app *App) GetCurrentPrice() (Quote, error) {
	code, body, err := httpagent.Get(app.URL())
	if err != nil {
		log.Error().Err(err).Str("package", "oracle").Str("func", "GetCurrentPrice").
			Msg("Unable to reach the price feed")
		return Quote{}, ErrOracleUnavailable
	}
	if code != http.StatusOK {
		log.Error().Str("package", "oracle").Str("func", "GetCurrentPrice").
			Str("status", fmt.Sprintf("%d (%s)", code, http.StatusText(code))).
			Msg("Price feed returned an invalid status code")
		return Quote{}, ErrOracleUnavailable
	}

	var resp feedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Quote{}, ErrOracleUnavailable
	}

	price, ok := conv.NewAmountFromString(resp.Price)
	if !ok || !conv.IsPositive(price) {
		return Quote{}, ErrOracleUnavailable
	}

	return Quote{
		Price:     price,
		Timestamp: time.Unix(resp.Timestamp, 0),
		Decimals:  FeedDecimals,
	}, nil
}
