package feeds

import (
	"context"

	"github.com/metalldk/storefront/pkg/logger"
	"github.com/metalldk/storefront/pkg/types"
)

type SocialSource interface {
	Social(ctx context.Context) (types.SocialLinks, error)
}

type SocialFeed struct {
	src  SocialSource
	logg *logger.Logger
}

func NewSocialFeed(src SocialSource, logg *logger.Logger) *SocialFeed {
	if logg == nil {
		logg = logger.Nop()
	}
	return &SocialFeed{src: src, logg: logg}
}

// Links returns the configured links. A failed load leaves every link empty.
func (f *SocialFeed) Links(ctx context.Context) types.SocialLinks {
	links, err := f.src.Social(ctx)
	if err != nil {
		f.logg.Warn(f.logg.WithField(ctx, "error", err.Error()), "feeds.social.unavailable")
		return types.SocialLinks{}
	}
	return links.Normalize()
}
