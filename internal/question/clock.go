package question

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"quiz-engine/internal/domain"
)

// ClockAngleQuestion asks for the smaller angle between the hands of an
// analogue clock, rounded to whole degrees.
type ClockAngleQuestion struct {
	base
	hour   int
	minute int
}

func init() {
	register(ClockAngle, func(_ context.Context, env Env, _ *domain.Player, p *Params) (Question, error) {
		q := &ClockAngleQuestion{base: newBase(env, ClockAngle)}
		if p != nil {
			hour, minute, err := parseClock(p.Clock)
			if err != nil {
				return nil, err
			}
			q.hour, q.minute = hour, minute
		} else {
			q.hour, q.minute = env.Rand.Intn(24), env.Rand.Intn(60)
		}
		return q, nil
	})
}

func parseClock(raw string) (int, int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok {
		return 0, 0, invalidParams(ClockAngle, "time %q is not HH:MM", raw)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, invalidParams(ClockAngle, "bad hour in %q", raw)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, invalidParams(ClockAngle, "bad minute in %q", raw)
	}
	return hour, minute, nil
}

func (q *ClockAngleQuestion) AsText() string {
	return fmt.Sprintf("what is the smaller angle between the minute and hour hand at %02d:%02d", q.hour, q.minute)
}

func (q *ClockAngleQuestion) CorrectAnswer() string {
	hourAngle := 0.5 * float64(60*(q.hour%12)+q.minute)
	minuteAngle := 6 * float64(q.minute)
	angle := math.Abs(minuteAngle - hourAngle)
	if angle > 180 {
		angle = 360 - angle
	}
	return strconv.Itoa(int(math.Round(angle)))
}
