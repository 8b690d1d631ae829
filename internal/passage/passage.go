// Package passage holds the test corpus and random selection.
package passage

import (
	"errors"
	"math/rand"
	"time"
)

// ErrEmptyCorpus indicates a deployment defect, not a user error.
var ErrEmptyCorpus = errors.New("passage corpus is empty")

// Corpus is the fixed set of campus-themed passages.
var Corpus = []string{
	"Waterloo co-op is the ultimate hustle. Six work terms, endless applications, and the dream of landing that Cali-or-bust internship. We grind through LeetCode, polish our resumes, and type cover letters faster than we type code.",
	"California or bust! That's the Waterloo rallying cry. Every CS and engineering student dreams of that Silicon Valley co-op. The rent might be wild, but the experience is priceless. Plus, you can always retreat to campus geese for humility.",
	"The co-op hustle never pauses. While other schools relax, Warriors submit applications, crush interviews, and prep for the next work term. It's intense, but graduating with two years of experience hits different.",
	"Waterloo students don't sleep, we optimize. Schedules, co-op applications, typing speed. When you're juggling classes and job hunting, every second matters.",
	"San Francisco rent is higher than our GPAs, but that's the price of the Cali dream. Study hard, apply harder, and maybe one day that studio apartment view is yours.",
	"The internship treadmill is real. We spend more time on WaterlooWorks than on Quest. Cover letters, coding challenges, coffee chats, repeat until you ship your dream co-op.",
	"Waterloo co-op isn't just a program; it's a lifestyle. Four-month cycles, new cities, suitcases packed like IKEA speedruns. Chaotic? Absolutely. Worth it? Completely.",
	"California or bust isn't a phrase, it's a mindset. Warriors chase stories of alumni crushing it in the Bay. We see the success, read the Medium posts, and grind to be next.",
	"Application season is spicier than finals. Refresh inboxes, grind coding problems, hope the resume stands out. But when the offer hits, it's goosebump city.",
	"Waterloo geese rival tech recruiters for aggression, but at least recruiters pay. We dodge geese on Ring Road and chase internships with the same relentless energy.",
}

// Selector picks passages from a corpus.
type Selector struct {
	rnd *rand.Rand
}

// NewSelector returns a Selector seeded with the current time.
func NewSelector() *Selector {
	return &Selector{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Select picks one passage uniformly at random.
func (s *Selector) Select(corpus []string) (string, error) {
	if len(corpus) == 0 {
		return "", ErrEmptyCorpus
	}
	return corpus[s.rnd.Intn(len(corpus))], nil
}
