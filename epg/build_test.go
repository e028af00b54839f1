package epg

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayna-epg/consts"
	"ayna-epg/tv"
)

func str(s string) *string { return &s }

func prog(start, end tv.Timestamp, name string) tv.Program {
	return tv.Program{Start: start, End: end, Name: tv.NewText(name), Description: tv.NewText(name + " desc")}
}

func bundle(id, name string, programs ...tv.Program) tv.Bundle {
	return tv.Bundle{ID: str(id), Name: tv.NewText(name), Programs: programs}
}

func titles(doc *TV, channel string) []string {
	var out []string
	for _, p := range doc.Programmes {
		if p.Channel == channel {
			out = append(out, p.Title.Text)
		}
	}
	return out
}

func TestBuildGeneratorAttributes(t *testing.T) {
	doc, stats := Build(tv.ChannelIndex{}, nil)

	assert.Equal(t, consts.GENERATOR_NAME, doc.GeneratorInfoName)
	assert.Equal(t, "", doc.GeneratorInfoURL)
	assert.Empty(t, doc.Channels)
	assert.Empty(t, doc.Programmes)
	assert.Equal(t, Stats{}, stats)
}

func TestBuildDeduplicatesChannels(t *testing.T) {
	days := []tv.DaySchedule{
		{Bundles: []tv.Bundle{bundle("ch1", "One"), bundle("ch2", "Two")}},
		{Bundles: []tv.Bundle{bundle("ch2", "Two again"), bundle("ch1", "One again")}},
		{Bundles: []tv.Bundle{bundle("ch3", "Three"), bundle("ch1", "One")}},
	}

	doc, stats := Build(tv.ChannelIndex{}, days)

	require.Len(t, doc.Channels, 3)
	assert.Equal(t, "ch1", doc.Channels[0].ID)
	assert.Equal(t, "One", doc.Channels[0].DisplayName)
	assert.Equal(t, "ch2", doc.Channels[1].ID)
	assert.Equal(t, "Two", doc.Channels[1].DisplayName)
	assert.Equal(t, "ch3", doc.Channels[2].ID)
	assert.Equal(t, 3, stats.Channels)
}

func TestBuildUsesMetadata(t *testing.T) {
	index := tv.ChannelIndex{
		"ch1": {ID: "ch1", Name: "Channel One HD", Category: "News", Logo: "https://img/1.png"},
		"ch9": {ID: "ch9", Name: "Never scheduled", Category: "Music", Logo: "https://img/9.png"},
	}
	days := []tv.DaySchedule{{Bundles: []tv.Bundle{bundle("ch1", "one"), bundle("ch2", "two")}}}

	doc, _ := Build(index, days)

	require.Len(t, doc.Channels, 2)
	ch1 := doc.Channels[0]
	assert.Equal(t, "Channel One HD", ch1.DisplayName)
	require.NotNil(t, ch1.Category)
	assert.Equal(t, "News", *ch1.Category)
	require.NotNil(t, ch1.Icon)
	assert.Equal(t, "https://img/1.png", ch1.Icon.Src)

	ch2 := doc.Channels[1]
	assert.Equal(t, "two", ch2.DisplayName)
	assert.Nil(t, ch2.Category)
	assert.Nil(t, ch2.Icon)

	for _, c := range doc.Channels {
		assert.NotEqual(t, "ch9", c.ID)
	}
}

func TestBuildValidatesPrograms(t *testing.T) {
	days := []tv.DaySchedule{{Bundles: []tv.Bundle{bundle("ch1", "One",
		prog("1000", "2000", "ok"),
		prog("2000", "1000", "reversed"),
		prog("0", "100", "zero"),
		prog("abc", "100", "garbage"),
		prog("", "", "missing"),
	)}}}

	doc, stats := Build(tv.ChannelIndex{}, days)

	assert.Equal(t, []string{"ok"}, titles(doc, "ch1"))
	assert.Equal(t, 1, stats.Programmes)
	assert.Equal(t, 4, stats.Dropped)
}

func TestBuildChannelWithoutValidPrograms(t *testing.T) {
	days := []tv.DaySchedule{{Bundles: []tv.Bundle{bundle("ch1", "One", prog("5", "1", "bad"))}}}

	doc, _ := Build(tv.ChannelIndex{}, days)

	require.Len(t, doc.Channels, 1)
	assert.Empty(t, doc.Programmes)
}

func TestBuildSortsPrograms(t *testing.T) {
	days := []tv.DaySchedule{
		{Bundles: []tv.Bundle{bundle("ch1", "One",
			prog("3000", "3500", "c"),
			prog("1000", "1500", "a"),
			prog("2000", "2500", "b"),
		)}},
		{Bundles: []tv.Bundle{
			bundle("ch2", "Two", prog("1200", "1300", "x")),
			bundle("ch1", "One",
				prog("2500", "2600", "b2"),
				prog("500", "900", "early"),
			),
		}},
	}

	doc, _ := Build(tv.ChannelIndex{}, days)

	assert.Equal(t, []string{"early", "a", "b", "b2", "c"}, titles(doc, "ch1"))
	assert.Equal(t, []string{"x"}, titles(doc, "ch2"))

	// channels first, programmes grouped by channel in first-seen order
	require.Len(t, doc.Programmes, 6)
	assert.Equal(t, "ch1", doc.Programmes[0].Channel)
	assert.Equal(t, "ch2", doc.Programmes[5].Channel)
}

func TestBuildSortIsStable(t *testing.T) {
	days := []tv.DaySchedule{{Bundles: []tv.Bundle{bundle("ch1", "One",
		prog("1000", "1100", "first"),
		prog("1000", "1200", "second"),
		prog("900", "1000", "zero"),
	)}}}

	doc, _ := Build(tv.ChannelIndex{}, days)

	assert.Equal(t, []string{"zero", "first", "second"}, titles(doc, "ch1"))
}

func TestBuildProgrammeFields(t *testing.T) {
	p := tv.Program{Start: "1700000000", End: "1700003600", Name: tv.NewText("<b>Khobor</b> <Live>"), Description: tv.NewText("News &amp; more")}
	days := []tv.DaySchedule{{Bundles: []tv.Bundle{bundle("ch1", "One", p)}}}

	doc, _ := Build(tv.ChannelIndex{}, days)

	require.Len(t, doc.Programmes, 1)
	got := doc.Programmes[0]
	assert.Equal(t, "20231115041320 +0600", got.Start)
	assert.Equal(t, "20231115051320 +0600", got.Stop)
	assert.Equal(t, "ch1", got.Channel)
	assert.Equal(t, TextLang{Text: "Khobor <Live>", Lang: "bn"}, got.Title)
	assert.Equal(t, TextLang{Text: "News & more", Lang: "bn"}, got.Desc)
}

func TestBuildMissingFieldsDefaults(t *testing.T) {
	days := []tv.DaySchedule{{Bundles: []tv.Bundle{{
		Programs: []tv.Program{{Start: "1000", End: "2000"}},
	}}}}

	doc, _ := Build(tv.ChannelIndex{}, days)

	require.Len(t, doc.Channels, 1)
	assert.Equal(t, consts.UNKNOWN_CHANNEL_ID, doc.Channels[0].ID)
	assert.Equal(t, consts.UNKNOWN_CHANNEL_NAME, doc.Channels[0].DisplayName)
	require.Len(t, doc.Programmes, 1)
	assert.Equal(t, consts.UNKNOWN_PROGRAM, doc.Programmes[0].Title.Text)
	assert.Equal(t, consts.NO_DESCRIPTION, doc.Programmes[0].Desc.Text)
}

func TestBuildFromDecodedFeed(t *testing.T) {
	feed := `[{"i":"ch1","n":null,"epg":[
		{"s":1700000000.0,"e":1700003600.0,"n":null,"d":null},
		{"s":1700003600,"e":1700007200},
		{"s":"1700007200.0","e":"1700010800","n":"String float","d":"x"}
	]}]`
	var bundles []tv.Bundle
	require.NoError(t, json.Unmarshal([]byte(feed), &bundles))

	doc, stats := Build(tv.ChannelIndex{}, []tv.DaySchedule{{Bundles: bundles}})

	require.Len(t, doc.Channels, 1)
	assert.Equal(t, "", doc.Channels[0].DisplayName)

	require.Len(t, doc.Programmes, 2)
	first := doc.Programmes[0]
	assert.Equal(t, "20231115041320 +0600", first.Start)
	assert.Equal(t, "20231115051320 +0600", first.Stop)
	assert.Equal(t, "", first.Title.Text)
	assert.Equal(t, "", first.Desc.Text)

	second := doc.Programmes[1]
	assert.Equal(t, consts.UNKNOWN_PROGRAM, second.Title.Text)
	assert.Equal(t, consts.NO_DESCRIPTION, second.Desc.Text)

	assert.Equal(t, 1, stats.Dropped)
}
