package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/boatrace-predictor/internal/models"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestExtract_OfficialLayout(t *testing.T) {
	result := New().Extract(loadFixture(t, "racelist_official.html"))

	assert.Equal(t, StrategyRacerTbody, result.Strategy)
	require.Len(t, result.Records, 6)

	first := result.Records[0]
	assert.Equal(t, 1, first.BoatNumber)
	assert.Equal(t, "4320", first.RegistrationNumber)
	assert.Equal(t, "峰 竜太", first.Name)
	assert.Equal(t, models.ClassA1, first.ClassTier)
	assert.Equal(t, "福岡", first.Branch)
	assert.Equal(t, "佐賀", first.Hometown)
	assert.Equal(t, "37", first.Age)
	assert.InDelta(t, 7.85, first.WinRate, 0.0001)
	assert.InDelta(t, 0.12, first.StartTiming, 0.0001)
	assert.False(t, first.Synthetic)

	last := result.Records[5]
	assert.Equal(t, 6, last.BoatNumber)
	assert.Equal(t, "5150", last.RegistrationNumber)
	assert.Equal(t, models.ClassB2, last.ClassTier)
	assert.InDelta(t, 3.10, last.WinRate, 0.0001)
	assert.InDelta(t, 0.22, last.StartTiming, 0.0001)
}

func TestExtract_NamedTable(t *testing.T) {
	result := New().Extract(loadFixture(t, "racelist_named.html"))

	assert.Equal(t, StrategyNamedTable, result.Strategy)
	// The one-cell break row is skipped and the seventh racer is discarded.
	require.Len(t, result.Records, 6)

	for i, rec := range result.Records {
		assert.Equal(t, i+1, rec.BoatNumber)
	}

	first := result.Records[0]
	assert.Equal(t, "4320", first.RegistrationNumber)
	assert.Equal(t, "峰 竜太", first.Name)
	assert.Equal(t, "福岡", first.Branch)
	assert.Equal(t, "佐賀", first.Hometown)
	assert.Equal(t, "37", first.Age)
	assert.InDelta(t, 7.85, first.WinRate, 0.0001)
	assert.InDelta(t, 0.12, first.StartTiming, 0.0001)

	unknownClass := result.Records[4]
	assert.Equal(t, "5012", unknownClass.RegistrationNumber)
	assert.Equal(t, models.ClassB1, unknownClass.ClassTier)
	assert.Equal(t, DefaultWinRate, unknownClass.WinRate)
	assert.Equal(t, DefaultStartTiming, unknownClass.StartTiming)
	assert.Equal(t, "24", unknownClass.Age)

	short := result.Records[5]
	assert.Equal(t, "5150", short.RegistrationNumber)
	assert.Equal(t, "佐藤 花子", short.Name)
	assert.Equal(t, models.ClassB2, short.ClassTier)
	assert.Equal(t, "東京", short.Branch)
	assert.Empty(t, short.Hometown)
	assert.Empty(t, short.Age)
}

func TestExtract_FirstLargeTable(t *testing.T) {
	var b strings.Builder
	b.WriteString("<table><tr><td>ignored</td></tr></table>")
	b.WriteString("<table><tr><th>番号</th><th>氏名</th><th>級</th><th>支部</th></tr>")
	for _, reg := range []string{"4001", "4002", "4003", "4004", "4005", "4006"} {
		b.WriteString("<tr><td>" + reg + "</td><td>選手" + reg + "</td><td>A2</td><td>東京</td></tr>")
	}
	b.WriteString("</table>")

	result := New().Extract([]byte(b.String()))

	assert.Equal(t, StrategyFirstLargeTable, result.Strategy)
	require.Len(t, result.Records, 6)
	assert.Equal(t, "4001", result.Records[0].RegistrationNumber)
	assert.Equal(t, "選手4006", result.Records[5].Name)
	assert.Equal(t, models.ClassA2, result.Records[3].ClassTier)
	assert.Equal(t, "東京", result.Records[2].Branch)
}

func TestExtract_TdHeaderRowIsNotALane(t *testing.T) {
	header := "<tr><td>登録番号</td><td>選手名</td><td>級別</td><td>支部/出身地</td><td>年齢</td><td>勝率</td></tr>"
	var body strings.Builder
	for _, reg := range []string{"4001", "4002", "4003", "4004", "4005", "4006"} {
		body.WriteString("<tr><td>" + reg + "</td><td>選手" + reg + "</td><td>A1</td><td>東京</td><td>東京</td><td>30歳</td></tr>")
	}

	tests := []struct {
		name     string
		markup   string
		strategy string
	}{
		{
			name:     "named table",
			markup:   `<table class="is-w495">` + header + body.String() + "</table>",
			strategy: StrategyNamedTable,
		},
		{
			name:     "first large table",
			markup:   "<table>" + header + body.String() + "</table>",
			strategy: StrategyFirstLargeTable,
		},
		{
			name:     "stacked headers",
			markup:   `<table class="racelist">` + header + header + body.String() + "</table>",
			strategy: StrategyNamedTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New().Extract([]byte(tt.markup))

			assert.Equal(t, tt.strategy, result.Strategy)
			require.Len(t, result.Records, 6)
			for i, rec := range result.Records {
				assert.Equal(t, i+1, rec.BoatNumber)
				assert.Equal(t, fmt.Sprintf("%d", 4001+i), rec.RegistrationNumber)
				assert.Equal(t, "選手"+rec.RegistrationNumber, rec.Name)
			}
		})
	}
}

func TestExtract_TextPattern(t *testing.T) {
	result := New().Extract(loadFixture(t, "racelist_text.html"))

	assert.Equal(t, StrategyTextPattern, result.Strategy)
	require.Len(t, result.Records, 3)

	rec := result.Records[1]
	assert.Equal(t, 2, rec.BoatNumber)
	assert.Equal(t, "4444", rec.RegistrationNumber)
	assert.Equal(t, "桐生 順平", rec.Name)
	assert.Equal(t, models.ClassA1, rec.ClassTier)
	assert.Equal(t, "埼玉", rec.Branch)
	assert.Equal(t, "36", rec.Age)
	assert.InDelta(t, 7.10, rec.WinRate, 0.0001)
	assert.InDelta(t, 0.14, rec.StartTiming, 0.0001)
}

func TestExtract_NoMatch(t *testing.T) {
	tests := []struct {
		name   string
		markup string
	}{
		{name: "empty", markup: ""},
		{name: "plain text", markup: "maintenance in progress"},
		{name: "unrelated page", markup: "<html><body><h1>開催中止</h1><p>本日のレースは中止です</p></body></html>"},
		{name: "small table", markup: "<table><tr><td>a</td><td>b</td></tr></table>"},
		{name: "truncated", markup: "<html><body><div class=\"table1\"><table><tbody class=\"is-fs12\"><tr><td>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New().Extract([]byte(tt.markup))
			assert.Empty(t, result.Records)
			assert.Empty(t, result.Strategy)
		})
	}
}

func TestExtract_FullWidthDigits(t *testing.T) {
	markup := `<table class="racelist">
		<tr><td>４３２０</td><td>峰 竜太</td><td>Ａ１</td><td>福岡</td><td>佐賀</td><td>３７歳</td><td>７.８５</td><td>０.１２</td></tr>
	</table>`

	result := New().Extract([]byte(markup))

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Equal(t, "4320", rec.RegistrationNumber)
	assert.Equal(t, models.ClassA1, rec.ClassTier)
	assert.Equal(t, "37", rec.Age)
	assert.InDelta(t, 7.85, rec.WinRate, 0.0001)
	assert.InDelta(t, 0.12, rec.StartTiming, 0.0001)
}

func TestExtract_StrategyOrder(t *testing.T) {
	// Official markup also carries the named table class; the tbody strategy
	// must win.
	result := New().Extract(loadFixture(t, "racelist_official.html"))
	assert.Equal(t, StrategyRacerTbody, result.Strategy)

	custom := New(Strategy{
		Name: "fixed",
		Find: func(*goquery.Document) []Row {
			return []Row{{Text: "1234 B2", NameHint: "テスト"}}
		},
	})
	result = custom.Extract([]byte("<html></html>"))
	assert.Equal(t, "fixed", result.Strategy)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "1234", result.Records[0].RegistrationNumber)
	assert.Equal(t, "テスト", result.Records[0].Name)
	assert.Equal(t, models.ClassB2, result.Records[0].ClassTier)
}

func TestExtractor_Strategies(t *testing.T) {
	assert.Equal(t, []string{
		StrategyRacerTbody,
		StrategyNamedTable,
		StrategyFirstLargeTable,
		StrategyTextPattern,
	}, New().Strategies())
}

func TestExtractReader_Unparseable(t *testing.T) {
	_, err := New().ExtractReader(iotest.ErrReader(assert.AnError))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestBuildRecord_Defaults(t *testing.T) {
	rec := buildRecord(3, Row{Text: "no usable data here"})

	assert.Equal(t, 3, rec.BoatNumber)
	assert.Empty(t, rec.RegistrationNumber)
	assert.Empty(t, rec.Name)
	assert.Equal(t, models.DefaultClassTier, rec.ClassTier)
	assert.Empty(t, rec.Branch)
	assert.Empty(t, rec.Hometown)
	assert.Empty(t, rec.Age)
	assert.Equal(t, DefaultWinRate, rec.WinRate)
	assert.Equal(t, DefaultStartTiming, rec.StartTiming)
}

func TestRateTokens(t *testing.T) {
	rates := rateTokens(Row{Text: "F0 L0 0.15 6.50 45.00 62.00 52.0kg 37"})
	require.Len(t, rates, 2)
	assert.Equal(t, "0.15", rates[0].StringFixed(2))
	assert.Equal(t, "6.5", rates[1].String())

	winRate, ok := winRateField(rates)
	require.True(t, ok)
	assert.InDelta(t, 6.50, winRate, 0.0001)

	startTiming, ok := startTimingField(rates)
	require.True(t, ok)
	assert.InDelta(t, 0.15, startTiming, 0.0001)
}
