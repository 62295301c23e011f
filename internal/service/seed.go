package service

import "github.com/systok/clip-feed-go/internal/models"

// seedClips returns the fixed example clips inserted by the one-time seed
// routine.
func seedClips() []*models.Clip {
	return []*models.Clip{
		{
			Title:        "What is a Kernel?",
			Topic:        "OS",
			Description:  "A quick primer on monolithic vs microkernels with visuals.",
			VideoURL:     "https://samplelib.com/lib/preview/mp4/sample-5s.mp4",
			ThumbnailURL: "https://picsum.photos/seed/kernel/400/700",
			Tags:         []string{"kernel", "os", "linux"},
			Difficulty:   models.DifficultyBeginner,
			Author:       "SysTok",
		},
		{
			Title:        "Page Tables in 60s",
			Topic:        "OS",
			Description:  "Virtual memory, TLBs and multi-level tables.",
			VideoURL:     "https://samplelib.com/lib/preview/mp4/sample-5s.mp4",
			ThumbnailURL: "https://picsum.photos/seed/pagetable/400/700",
			Tags:         []string{"memory", "paging"},
			Difficulty:   models.DifficultyIntermediate,
			Author:       "SysTok",
		},
		{
			Title:        "Compiler vs Interpreter",
			Topic:        "Compilers",
			Description:  "Key differences and when each is used.",
			VideoURL:     "https://samplelib.com/lib/preview/mp4/sample-5s.mp4",
			ThumbnailURL: "https://picsum.photos/seed/compiler/400/700",
			Tags:         []string{"compiler", "interpreter"},
			Difficulty:   models.DifficultyBeginner,
			Author:       "SysTok",
		},
	}
}
