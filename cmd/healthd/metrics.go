package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
	"github.com/Samandarcodee/Yurlo-sub000/internal/engine"
)

// MetricsCmd computes profile metrics without a server or store.
type MetricsCmd struct {
	Gender     string  `help:"male or female." required:""`
	BirthYear  int     `help:"Year of birth." required:""`
	Height     float64 `help:"Height." required:""`
	HeightUnit string  `help:"cm or in." default:"cm" enum:"cm,in"`
	Weight     float64 `help:"Weight." required:""`
	WeightUnit string  `help:"kg or lb." default:"kg" enum:"kg,lb"`
	Activity   string  `help:"Activity level." default:"moderate"`
	Goal       string  `help:"lose, maintain or gain." default:"maintain" enum:"lose,maintain,gain"`
}

func (c *MetricsCmd) Run() error {
	return c.write(os.Stdout, time.Now().Year())
}

func (c *MetricsCmd) write(w io.Writer, currentYear int) error {
	p, err := c.profile(currentYear)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(engine.ComputeProfileMetrics(p, currentYear, engine.DefaultMacroSplit))
}

func (c *MetricsCmd) profile(currentYear int) (domain.UserProfile, error) {
	level, ok := domain.ParseActivityLevel(c.Activity)
	if !ok {
		return domain.UserProfile{}, fmt.Errorf("%w: unknown activity level %q", domain.ErrInvalidProfile, c.Activity)
	}
	heightCm, err := domain.HeightToCm(c.Height, c.HeightUnit)
	if err != nil {
		return domain.UserProfile{}, err
	}
	weightKg, err := domain.WeightToKg(c.Weight, c.WeightUnit)
	if err != nil {
		return domain.UserProfile{}, err
	}
	p := domain.UserProfile{
		Gender:        domain.Gender(strings.ToLower(c.Gender)),
		BirthYear:     c.BirthYear,
		HeightCm:      heightCm,
		WeightKg:      weightKg,
		ActivityLevel: level,
		Goal:          domain.FitnessGoal(c.Goal),
	}
	return p, p.Validate(currentYear)
}
