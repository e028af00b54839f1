package epg

import (
	"cmp"
	"slices"

	"ayna-epg/consts"
	"ayna-epg/logger"
	"ayna-epg/tv"
)

// Stats summarizes one assembled guide.
type Stats struct {
	Channels   int
	Programmes int
	Dropped    int
	FailedDays int
}

type keyedProgramme struct {
	start int64
	prog  *Programme
}

func startKey(p tv.Program) int64 {
	sec, err := parseUnix(string(p.Start))
	if err != nil {
		return 0
	}
	return sec
}

func newChannel(b tv.Bundle, index tv.ChannelIndex) *Channel {
	id := b.ChannelID()
	info, ok := index[id]
	if !ok {
		return &Channel{ID: id, DisplayName: b.ChannelName()}
	}
	category := info.Category
	return &Channel{
		ID:          id,
		DisplayName: info.Name,
		Category:    &category,
		Icon:        &Icon{Src: info.Logo},
	}
}

// Build merges the fetched days into one guide. Each channel id yields a
// single channel node, taken from the metadata index when present. Channel
// nodes come first, then programmes grouped by channel in first-seen
// order and sorted by start. Programmes with invalid or unformattable
// times are dropped.
func Build(index tv.ChannelIndex, days []tv.DaySchedule) (*TV, Stats) {
	doc := &TV{
		GeneratorInfoName: consts.GENERATOR_NAME,
		GeneratorInfoURL:  consts.GENERATOR_URL,
	}
	var stats Stats

	seen := make(map[string]bool)
	var order []string
	byChannel := make(map[string][]keyedProgramme)

	for _, day := range days {
		for _, bundle := range day.Bundles {
			id := bundle.ChannelID()
			if !seen[id] {
				doc.Channels = append(doc.Channels, newChannel(bundle, index))
				seen[id] = true
				order = append(order, id)
			}

			programs := slices.Clone(bundle.Programs)
			slices.SortStableFunc(programs, func(a, b tv.Program) int {
				return cmp.Compare(startKey(a), startKey(b))
			})

			for _, p := range programs {
				if !ValidProgramTimes(string(p.Start), string(p.End)) {
					stats.Dropped++
					logger.Log.Debug().Str("channel", id).Str("start", string(p.Start)).Str("end", string(p.End)).Msg("invalid programme times")
					continue
				}
				start := FormatTimestamp(string(p.Start))
				stop := FormatTimestamp(string(p.End))
				if start == "" || stop == "" {
					stats.Dropped++
					continue
				}
				byChannel[id] = append(byChannel[id], keyedProgramme{
					start: startKey(p),
					prog: &Programme{
						Start:   start,
						Stop:    stop,
						Channel: id,
						Title:   TextLang{Text: CleanText(p.Title()), Lang: consts.LANG},
						Desc:    TextLang{Text: CleanText(p.Desc()), Lang: consts.LANG},
					},
				})
			}
		}
	}

	for _, id := range order {
		progs := byChannel[id]
		slices.SortStableFunc(progs, func(a, b keyedProgramme) int {
			return cmp.Compare(a.start, b.start)
		})
		for _, kp := range progs {
			doc.Programmes = append(doc.Programmes, kp.prog)
		}
	}

	stats.Channels = len(doc.Channels)
	stats.Programmes = len(doc.Programmes)
	return doc, stats
}
