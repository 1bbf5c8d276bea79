package codec

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickbot-go/internal/datamodel"
)

func sampleState() *datamodel.TradingState {
	state := &datamodel.TradingState{Timestamp: 1000, TraderData: "ignored"}
	state.Listings.Set("RAINFOREST_RESIN", datamodel.Listing{Symbol: "RAINFOREST_RESIN", Product: "RAINFOREST_RESIN", Denomination: "SEASHELLS"})

	var resin datamodel.OrderDepth
	resin.BuyOrders.Set(9996, 2)
	resin.BuyOrders.Set(9995, 29)
	resin.SellOrders.Set(10004, -2)
	resin.SellOrders.Set(10005, -29)
	state.OrderDepths.Set("RAINFOREST_RESIN", resin)

	state.MarketTrades.Set("RAINFOREST_RESIN", []datamodel.Trade{
		{Symbol: "RAINFOREST_RESIN", Price: 10000, Quantity: 1, Buyer: "A", Seller: "B", Timestamp: 900},
	})
	state.Position.Set("RAINFOREST_RESIN", 3)
	return state
}

func TestCompressStateLayout(t *testing.T) {
	out, err := sonic.ConfigDefault.Marshal(CompressState(sampleState(), "kept"))
	require.NoError(t, err)

	want := `[1000,"kept",[["RAINFOREST_RESIN","RAINFOREST_RESIN","SEASHELLS"]],` +
		`{"RAINFOREST_RESIN":[{"9996":2,"9995":29},{"10004":-2,"10005":-29}]},` +
		`[],[["RAINFOREST_RESIN",10000,1,"A","B",900]],{"RAINFOREST_RESIN":3},[{},{}]]`
	assert.Equal(t, want, string(out))
}

func TestCompressStateNil(t *testing.T) {
	out, err := sonic.ConfigDefault.Marshal(CompressState(nil, ""))
	require.NoError(t, err)
	assert.Equal(t, `[0,"",[],{},[],[],{},[{},{}]]`, string(out))
}

func TestCompressTradesConcatenatesSymbolsInOrder(t *testing.T) {
	var trades datamodel.OrderedMap[datamodel.Symbol, []datamodel.Trade]
	trades.Set("KELP", []datamodel.Trade{
		{Symbol: "KELP", Price: 2020, Quantity: 2},
		{Symbol: "KELP", Price: 2021, Quantity: 1},
	})
	trades.Set("RAINFOREST_RESIN", []datamodel.Trade{{Symbol: "RAINFOREST_RESIN", Price: 9999, Quantity: 4}})

	got := CompressTrades(trades)
	require.Len(t, got, 3)
	assert.Equal(t, "KELP", got[0][0])
	assert.Equal(t, 2021, got[1][1])
	assert.Equal(t, "RAINFOREST_RESIN", got[2][0])
}

func TestCompressObservations(t *testing.T) {
	var obs datamodel.Observation
	obs.PlainValueObservations.Set("DJEMBES", 7)
	obs.ConversionObservations.Set("MAGNIFICENT_MACARONS", datamodel.ConversionObservation{
		BidPrice: 600.5, AskPrice: 602, TransportFees: 1.5, ExportTariff: 9, ImportTariff: -3, SugarPrice: 200, SunlightIndex: 60,
	})

	out, err := sonic.ConfigDefault.Marshal(CompressObservations(obs))
	require.NoError(t, err)
	assert.Equal(t, `[{"DJEMBES":7},{"MAGNIFICENT_MACARONS":[600.5,602,1.5,9,-3,200,60]}]`, string(out))
}

func TestCompressOrders(t *testing.T) {
	var orders datamodel.Orders
	orders.Set("RAINFOREST_RESIN", []datamodel.Order{
		{Symbol: "RAINFOREST_RESIN", Price: 9998, Quantity: 5},
		{Symbol: "RAINFOREST_RESIN", Price: 10002, Quantity: -8},
	})
	orders.Set("KELP", nil)

	out, err := sonic.ConfigDefault.Marshal(CompressOrders(orders))
	require.NoError(t, err)
	assert.Equal(t, `[["RAINFOREST_RESIN",9998,5],["RAINFOREST_RESIN",10002,-8]]`, string(out))

	empty, err := sonic.ConfigDefault.Marshal(CompressOrders(datamodel.Orders{}))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(empty))
}

func levelPairs(levels datamodel.Levels) [][2]int {
	out := make([][2]int, 0, levels.Len())
	levels.Range(func(p, q int) bool {
		out = append(out, [2]int{p, q})
		return true
	})
	return out
}

func TestOrderDepthRoundTrip(t *testing.T) {
	state := sampleState()
	var kelp datamodel.OrderDepth
	kelp.BuyOrders.Set(2018, 12)
	kelp.SellOrders.Set(2023, -9)
	kelp.SellOrders.Set(2021, -1)
	state.OrderDepths.Set("KELP", kelp)
	state.OrderDepths.Set("SQUID_INK", datamodel.OrderDepth{})

	raw, err := sonic.ConfigDefault.Marshal(CompressOrderDepths(state.OrderDepths))
	require.NoError(t, err)

	var decoded datamodel.OrderedMap[datamodel.Symbol, CompressedDepth]
	require.NoError(t, sonic.ConfigDefault.Unmarshal(raw, &decoded))
	restored := DecompressOrderDepths(decoded)

	require.Equal(t, state.OrderDepths.Keys(), restored.Keys())
	state.OrderDepths.Range(func(symbol datamodel.Symbol, want datamodel.OrderDepth) bool {
		got, ok := restored.Get(symbol)
		require.True(t, ok)
		assert.Equal(t, levelPairs(want.BuyOrders), levelPairs(got.BuyOrders), symbol)
		assert.Equal(t, levelPairs(want.SellOrders), levelPairs(got.SellOrders), symbol)
		return true
	})
}
