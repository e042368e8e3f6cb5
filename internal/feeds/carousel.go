package feeds

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultAutoAdvance is the hero slide interval.
	DefaultAutoAdvance = 6 * time.Second
	// DefaultVisibleProducts is how many product cards fit the slider at once.
	DefaultVisibleProducts = 5
)

type carouselMode int

const (
	modeWrap carouselMode = iota
	modeClamp
)

// Carousel tracks the current slide. Hero carousels wrap around at both
// ends; product carousels stop at the first and last full page.
type Carousel struct {
	mu      sync.Mutex
	mode    carouselMode
	total   int
	visible int
	index   int
	touched chan struct{}
}

func NewHeroCarousel(total int) *Carousel {
	return &Carousel{mode: modeWrap, total: max(total, 0), visible: 1, touched: make(chan struct{}, 1)}
}

// NewProductCarousel shows visible cards at once; visible <= 0 uses DefaultVisibleProducts.
func NewProductCarousel(total, visible int) *Carousel {
	if visible <= 0 {
		visible = DefaultVisibleProducts
	}
	return &Carousel{mode: modeClamp, total: max(total, 0), visible: visible, touched: make(chan struct{}, 1)}
}

func (c *Carousel) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Offset is the horizontal shift of the slide strip in percent.
func (c *Carousel) Offset() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float64(c.index) * 100 / float64(c.visible)
}

func (c *Carousel) Next() int {
	return c.move(func(i int) int { return i + 1 })
}

func (c *Carousel) Prev() int {
	return c.move(func(i int) int { return i - 1 })
}

// GoTo jumps to slide i.
func (c *Carousel) GoTo(i int) int {
	return c.move(func(int) int { return i })
}

func (c *Carousel) move(step func(int) int) int {
	c.mu.Lock()
	c.index = c.fit(step(c.index))
	idx := c.index
	c.mu.Unlock()

	select {
	case c.touched <- struct{}{}:
	default:
	}
	return idx
}

func (c *Carousel) fit(i int) int {
	if c.total == 0 {
		return 0
	}
	if c.mode == modeWrap {
		return ((i % c.total) + c.total) % c.total
	}
	last := max(c.total-c.visible, 0)
	return min(max(i, 0), last)
}

// AutoAdvance moves to the next slide every interval and calls fn with the
// new index until ctx is done. Manual navigation restarts the interval.
func (c *Carousel) AutoAdvance(ctx context.Context, interval time.Duration, fn func(index int)) {
	if interval <= 0 {
		interval = DefaultAutoAdvance
	}
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.touched:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(interval)
		case <-timer.C:
			c.mu.Lock()
			c.index = c.fit(c.index + 1)
			idx := c.index
			c.mu.Unlock()
			if fn != nil {
				fn(idx)
			}
			timer.Reset(interval)
		}
	}
}
