package view_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jrsteele09/bbdap-client/dashboard"
	"github.com/jrsteele09/bbdap-client/view"
	"github.com/stretchr/testify/require"
)

func TestRenderLineChart(t *testing.T) {
	t.Run("two points", func(t *testing.T) {
		var buf bytes.Buffer
		err := view.RenderLineChart(&buf, []dashboard.ChartPoint{
			{X: "2024-01-01", Y: 10},
			{X: "2024-01-02", Y: 20},
		}, 3)
		require.NoError(t, err)

		expected := strings.Join([]string{
			"20 | *",
			"   |*",
			" 0 |",
			"   +--",
			"    2024-01-01 .. 2024-01-02",
			"",
		}, "\n")
		require.Equal(t, expected, buf.String())
	})

	t.Run("gaps are joined", func(t *testing.T) {
		var buf bytes.Buffer
		err := view.RenderLineChart(&buf, []dashboard.ChartPoint{
			{X: "a", Y: 0},
			{X: "b", Y: 4},
		}, 5)
		require.NoError(t, err)

		lines := strings.Split(buf.String(), "\n")
		require.Equal(t, "4 | *", lines[0])
		require.Equal(t, "  | |", lines[1])
		require.Equal(t, "  | |", lines[2])
		require.Equal(t, "  | |", lines[3])
		require.Equal(t, "0 |*", lines[4])
	})

	t.Run("values at the float64 limits", func(t *testing.T) {
		var buf bytes.Buffer
		err := view.RenderLineChart(&buf, []dashboard.ChartPoint{
			{X: "a", Y: -1e308},
			{X: "b", Y: 1e308},
		}, 3)
		require.NoError(t, err)

		lines := strings.Split(buf.String(), "\n")
		require.True(t, strings.HasSuffix(lines[0], "| *"), lines[0])
		require.True(t, strings.HasSuffix(lines[1], "| |"), lines[1])
		require.True(t, strings.HasSuffix(lines[2], "|*"), lines[2])
	})

	t.Run("empty series", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, view.RenderLineChart(&buf, nil, 5))
		require.Equal(t, "(no sales data)\n", buf.String())
	})
}

func TestRenderDashboard(t *testing.T) {
	var buf bytes.Buffer
	err := view.RenderDashboard(&buf, &dashboard.Dashboard{
		KPI:   dashboard.KPISnapshot{TotalSales: 100, TotalOrders: 4, AverageOrder: 25.5},
		Sales: []dashboard.SalesPoint{{Date: "2024-01-01", Sales: 10}},
	})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "Total Sales: 100\n")
	require.Contains(t, out, "Total Orders: 4\n")
	require.Contains(t, out, "Avg Order: 25.50\n")
	require.Contains(t, out, "2024-01-01")
}

func TestRenderStockAlerts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, view.RenderStockAlerts(&buf, nil))
	require.Equal(t, "No stock alerts\n", buf.String())

	buf.Reset()
	require.NoError(t, view.RenderStockAlerts(&buf, []dashboard.StockAlert{{Product: "Croissant", Status: "LOW STOCK"}}))
	require.Contains(t, buf.String(), "Croissant")
	require.Contains(t, buf.String(), "LOW STOCK")
}

func TestLoginPrompt(t *testing.T) {
	var out bytes.Buffer
	p := view.NewLoginPrompt(strings.NewReader("owner\r\n1234"), &out)

	creds, err := p.Prompt("BB-BDAP")
	require.NoError(t, err)
	require.Equal(t, view.Credentials{Username: "owner", Password: "1234"}, creds)
	require.Equal(t, "BB-BDAP Login\nUsername: Password: ", out.String())
}

func TestLoginPrompt_EOF(t *testing.T) {
	p := view.NewLoginPrompt(strings.NewReader(""), &bytes.Buffer{})
	_, err := p.Prompt("BB-BDAP")
	require.Error(t, err)
}

func TestConsoleNotifier(t *testing.T) {
	var buf bytes.Buffer
	view.NewConsoleNotifier(&buf).Notify("Login Failed", "bad creds")
	require.Equal(t, "Login Failed: bad creds\n", buf.String())
}
