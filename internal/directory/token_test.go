package directory_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Boateng555/assettrack-harren/internal/directory"
)

var _ = Describe("TokenCache", func() {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	It("returns nothing when empty", func() {
		var cache directory.TokenCache
		_, ok := cache.Get(now)
		Expect(ok).To(BeFalse())
	})

	It("returns a token until it expires", func() {
		var cache directory.TokenCache
		cache.Set("token-1", now.Add(time.Hour))

		token, ok := cache.Get(now)
		Expect(ok).To(BeTrue())
		Expect(token).To(Equal("token-1"))

		_, ok = cache.Get(now.Add(2 * time.Hour))
		Expect(ok).To(BeFalse())
	})

	It("forgets the token after Clear", func() {
		var cache directory.TokenCache
		cache.Set("token-1", now.Add(time.Hour))
		cache.Clear()

		_, ok := cache.Get(now)
		Expect(ok).To(BeFalse())
	})
})
