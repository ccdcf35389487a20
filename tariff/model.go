// Package tariff holds the streaming-service tariff request and its schemas.
package tariff

import (
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Kind is the outcome carried by a request.
type Kind int

const (
	Success Kind = iota + 1
	Failure
)

var kindTokens = map[string]Kind{
	"success": Success,
	"failure": Failure,
}

// String returns the wire token, or "Kind(n)" for values outside the table.
func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Failure:
		return "failure"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Request is the root document.
type Request struct {
	Kind   Kind   `json:"type"`
	Stream Stream `json:"stream"`
	Gifts  []Gift `json:"gifts"`
	Debug  Debug  `json:"debug"`
}

// Stream describes the user's stream and the tariffs offered on it.
type Stream struct {
	UserID        uuid.UUID     `json:"user_id"`
	IsPrivate     bool          `json:"is_private"`
	Settings      uint32        `json:"settings"`
	ShardURL      *url.URL      `json:"shard_url"`
	PublicTariff  PublicTariff  `json:"public_tariff"`
	PrivateTariff PrivateTariff `json:"private_tariff"`
}

// PublicTariff is the tariff any viewer can buy.
type PublicTariff struct {
	ID          uint32        `json:"id"`
	Price       uint32        `json:"price"`
	Duration    time.Duration `json:"duration"`
	Description string        `json:"description"`
}

// PrivateTariff is the tariff of a private stream; ClientPrice is what the
// client is charged.
type PrivateTariff struct {
	ClientPrice uint32        `json:"client_price"`
	Duration    time.Duration `json:"duration"`
	Description string        `json:"description"`
}

// Gift ids are not unique; order is significant.
type Gift struct {
	ID          uint32 `json:"id"`
	Price       uint32 `json:"price"`
	Description string `json:"description"`
}

// Debug records how long the request took and when it was made.
type Debug struct {
	Duration time.Duration `json:"duration"`
	At       time.Time     `json:"at"`
}
