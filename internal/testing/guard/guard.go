package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("ACCESSFLOW_TEST_MODE") == "" {
			_ = os.Setenv("ACCESSFLOW_TEST_MODE", "1")
		}
	})
}
