package countdown

import (
	"fmt"
	"time"

	"github.com/topi314/csat-counter/internal/xtime"
)

type Config struct {
	CSATOffsets []int          `toml:"csat_offsets"`
	MockMonths  []int          `toml:"mock_months"`
	CacheTTL    xtime.Duration `toml:"cache_ttl"`
}

func DefaultConfig() Config {
	return Config{
		CSATOffsets: []int{0, 1},
		MockMonths:  []int{3, 6, 9},
		CacheTTL:    xtime.Duration(10 * time.Minute),
	}
}

func (c Config) String() string {
	return fmt.Sprintf("\n CSATOffsets: %v\n MockMonths: %v\n CacheTTL: %s",
		c.CSATOffsets,
		c.MockMonths,
		c.CacheTTL,
	)
}

func (c Config) Validate() error {
	for _, month := range c.MockMonths {
		if month < 1 || month > 12 {
			return fmt.Errorf("invalid mock exam month: %d", month)
		}
	}
	for _, offset := range c.CSATOffsets {
		if offset < 0 {
			return fmt.Errorf("invalid csat offset: %d", offset)
		}
	}
	return nil
}
