package typecheck_test

import (
	"math"
	"net"
	"net/netip"
	"testing"
	"time"

	"github.com/bjaus/dataproperty/typecheck"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypecodeBitsAreDistinctPowersOfTwo(t *testing.T) {
	t.Parallel()
	var seen typecheck.Typecode
	for _, tc := range typecheck.Typecodes() {
		if tc == typecheck.None {
			continue
		}
		assert.Equal(t, typecheck.Typecode(0), tc&(tc-1), tc.String())
		assert.Zero(t, seen&tc, tc.String())
		seen |= tc
	}
}

func TestParseTypecode(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    typecheck.Typecode
		wantErr require.ErrorAssertionFunc
	}{
		"upper":   {input: "INTEGER", want: typecheck.Integer, wantErr: require.NoError},
		"lower":   {input: "real_number", want: typecheck.RealNumber, wantErr: require.NoError},
		"spaces":  {input: " ip_address ", want: typecheck.IPAddress, wantErr: require.NoError},
		"none":    {input: "none", want: typecheck.None, wantErr: require.NoError},
		"unknown": {input: "float", want: typecheck.None, wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := typecheck.ParseTypecode(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypecodeText(t *testing.T) {
	t.Parallel()
	text, err := typecheck.Dictionary.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "DICTIONARY", string(text))

	var tc typecheck.Typecode
	require.NoError(t, tc.UnmarshalText([]byte("nan")))
	assert.Equal(t, typecheck.NaN, tc)

	_, err = typecheck.Typecode(3).MarshalText()
	require.ErrorIs(t, err, typecheck.ErrUnknownTypecode)
	assert.Equal(t, "Typecode(3)", typecheck.Typecode(3).String())
}

func TestConvert(t *testing.T) {
	t.Parallel()
	when := time.Date(2017, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := map[string]struct {
		tc    typecheck.Typecode
		value any
		level typecheck.StrictLevel
		want  any
		ok    bool
	}{
		"none nil":                 {tc: typecheck.None, value: nil, level: typecheck.StrictMax, want: nil, ok: true},
		"none nil pointer":         {tc: typecheck.None, value: (*int)(nil), level: typecheck.StrictMax, want: nil, ok: true},
		"none rejects zero":        {tc: typecheck.None, value: 0, level: typecheck.StrictMin},
		"integer int":              {tc: typecheck.Integer, value: 7, level: typecheck.StrictMax, want: int64(7), ok: true},
		"integer uint8":            {tc: typecheck.Integer, value: uint8(9), level: typecheck.StrictMax, want: int64(9), ok: true},
		"integer string level 1":   {tc: typecheck.Integer, value: " 12 ", level: 1, want: int64(12), ok: true},
		"integer string strict":    {tc: typecheck.Integer, value: "12", level: typecheck.StrictMax},
		"integer float level 1":    {tc: typecheck.Integer, value: 2.0, level: 1, want: int64(2), ok: true},
		"integer fraction level 1": {tc: typecheck.Integer, value: 2.5, level: 1},
		"integer fraction level 0": {tc: typecheck.Integer, value: 2.5, level: 0, want: int64(2), ok: true},
		"integer decimal string 0": {tc: typecheck.Integer, value: "-3.9", level: 0, want: int64(-3), ok: true},
		"integer decimal string 1": {tc: typecheck.Integer, value: "3.9", level: 1},
		"integer rejects bool":     {tc: typecheck.Integer, value: true, level: typecheck.StrictMin},
		"integer rejects inf":      {tc: typecheck.Integer, value: math.Inf(1), level: typecheck.StrictMin},
		"integer huge uint":        {tc: typecheck.Integer, value: uint64(math.MaxUint64), level: typecheck.StrictMax, want: uint64(math.MaxUint64), ok: true},
		"integer huge uint string": {tc: typecheck.Integer, value: "18446744073709551615", level: 1, want: uint64(math.MaxUint64), ok: true},
		"real float":               {tc: typecheck.RealNumber, value: 1.5, level: typecheck.StrictMax, want: 1.5, ok: true},
		"real float32":             {tc: typecheck.RealNumber, value: float32(0.5), level: typecheck.StrictMax, want: 0.5, ok: true},
		"real string level 1":      {tc: typecheck.RealNumber, value: "2.25", level: 1, want: 2.25, ok: true},
		"real int string level 1":  {tc: typecheck.RealNumber, value: "2", level: 1},
		"real int string level 0":  {tc: typecheck.RealNumber, value: "2", level: 0, want: 2.0, ok: true},
		"real int level 1":         {tc: typecheck.RealNumber, value: 2, level: 1},
		"real int level 0":         {tc: typecheck.RealNumber, value: 2, level: 0, want: 2.0, ok: true},
		"real string strict":       {tc: typecheck.RealNumber, value: "2.5", level: typecheck.StrictMax},
		"real rejects nan":         {tc: typecheck.RealNumber, value: math.NaN(), level: typecheck.StrictMin},
		"real rejects word":        {tc: typecheck.RealNumber, value: "inf", level: typecheck.StrictMin},
		"infinity word":            {tc: typecheck.Infinity, value: "Infinity", level: typecheck.StrictMin, want: math.Inf(1), ok: true},
		"infinity negative word":   {tc: typecheck.Infinity, value: "-INF", level: typecheck.StrictMin, want: math.Inf(-1), ok: true},
		"infinity word level 1":    {tc: typecheck.Infinity, value: "inf", level: 1},
		"infinity float strict":    {tc: typecheck.Infinity, value: math.Inf(-1), level: typecheck.StrictMax, want: math.Inf(-1), ok: true},
		"bool":                     {tc: typecheck.Bool, value: false, level: typecheck.StrictMax, want: false, ok: true},
		"bool string level 1":      {tc: typecheck.Bool, value: "True", level: 1, want: true, ok: true},
		"bool string strict":       {tc: typecheck.Bool, value: "true", level: typecheck.StrictMax},
		"bool int level 0":         {tc: typecheck.Bool, value: 1, level: 0, want: true, ok: true},
		"bool int level 1":         {tc: typecheck.Bool, value: 1, level: 1},
		"null string":              {tc: typecheck.NullString, value: "", level: typecheck.StrictMax, want: "", ok: true},
		"null string blank min":    {tc: typecheck.NullString, value: "  ", level: typecheck.StrictMin, want: "", ok: true},
		"null string blank strict": {tc: typecheck.NullString, value: "  ", level: 1},
		"string":                   {tc: typecheck.String, value: "abc", level: typecheck.StrictMax, want: "abc", ok: true},
		"string bytes":             {tc: typecheck.String, value: []byte("abc"), level: 1, want: "abc", ok: true},
		"string any at min":        {tc: typecheck.String, value: 12, level: typecheck.StrictMin, want: "12", ok: true},
		"string int at level 1":    {tc: typecheck.String, value: 12, level: 1},
		"string nil":               {tc: typecheck.String, value: nil, level: typecheck.StrictMin},
		"datetime time":            {tc: typecheck.DateTime, value: when, level: typecheck.StrictMax, want: when, ok: true},
		"datetime string strict":   {tc: typecheck.DateTime, value: "2017-01-02T03:04:05Z", level: typecheck.StrictMax},
		"datetime string level 1":  {tc: typecheck.DateTime, value: "2017-01-02T03:04:05Z", level: 1, want: when, ok: true},
		"datetime epoch level 0":   {tc: typecheck.DateTime, value: when.Unix(), level: 0, want: when, ok: true},
		"ip addr":                  {tc: typecheck.IPAddress, value: netip.MustParseAddr("10.0.0.1"), level: typecheck.StrictMax, want: netip.MustParseAddr("10.0.0.1"), ok: true},
		"ip net.IP":                {tc: typecheck.IPAddress, value: net.ParseIP("192.168.0.1"), level: typecheck.StrictMax, want: netip.MustParseAddr("192.168.0.1"), ok: true},
		"ip string level 1":        {tc: typecheck.IPAddress, value: "::1", level: 1, want: netip.MustParseAddr("::1"), ok: true},
		"ip string strict":         {tc: typecheck.IPAddress, value: "::1", level: typecheck.StrictMax},
		"ip short string":          {tc: typecheck.IPAddress, value: "1.1", level: typecheck.StrictMin},
		"list slice":               {tc: typecheck.List, value: []int{1, 2}, level: typecheck.StrictMax, want: []any{1, 2}, ok: true},
		"list flow level 1":        {tc: typecheck.List, value: "[a, b]", level: 1, want: []any{"a", "b"}, ok: true},
		"list flow strict":         {tc: typecheck.List, value: "[a, b]", level: typecheck.StrictMax},
		"list rejects bytes":       {tc: typecheck.List, value: []byte("ab"), level: typecheck.StrictMin},
		"dict map":                 {tc: typecheck.Dictionary, value: map[string]int{"a": 1}, level: typecheck.StrictMax, want: map[string]any{"a": 1}, ok: true},
		"dict int keys":            {tc: typecheck.Dictionary, value: map[int]string{1: "x"}, level: typecheck.StrictMax, want: map[string]any{"1": "x"}, ok: true},
		"dict flow level 1":        {tc: typecheck.Dictionary, value: "{a: 1}", level: 1, want: map[string]any{"a": 1}, ok: true},
		"dict block level 1":       {tc: typecheck.Dictionary, value: "a: 1", level: 1},
		"dict block level 0":       {tc: typecheck.Dictionary, value: "a: 1", level: 0, want: map[string]any{"a": 1}, ok: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			c := typecheck.New(tt.tc, tt.value, tt.level)
			got, err := c.Convert()
			if !tt.ok {
				require.ErrorIs(t, err, typecheck.ErrTypeConversion)
				assert.False(t, c.IsType())
				assert.Nil(t, c.TryConvert())
				return
			}
			require.NoError(t, err)
			assert.True(t, c.IsType())
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.tc, c.Typecode())
		})
	}
}

func TestConvertNaN(t *testing.T) {
	t.Parallel()
	for _, v := range []any{math.NaN(), "nan", " NaN "} {
		got, err := typecheck.New(typecheck.NaN, v, typecheck.StrictMin).Convert()
		require.NoError(t, err)
		assert.True(t, math.IsNaN(got.(float64)))
	}
	assert.False(t, typecheck.New(typecheck.NaN, "nan", 1).IsType())
}

func TestConvertDecimal(t *testing.T) {
	t.Parallel()
	got, err := typecheck.New(typecheck.RealNumber, "1.10", 1, typecheck.WithFloatType(typecheck.Decimal)).Convert()
	require.NoError(t, err)
	d, ok := got.(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("1.1")))

	got, err = typecheck.New(typecheck.Integer, decimal.RequireFromString("4"), 1).Convert()
	require.NoError(t, err)
	assert.Equal(t, int64(4), got)
}

func TestConvertUnknownTypecode(t *testing.T) {
	t.Parallel()
	_, err := typecheck.New(typecheck.Typecode(3), 1, typecheck.StrictMin).Convert()
	require.ErrorIs(t, err, typecheck.ErrTypeConversion)
	require.ErrorIs(t, err, typecheck.ErrUnknownTypecode)
}

func TestFloatTypeText(t *testing.T) {
	t.Parallel()
	var ft typecheck.FloatType
	require.NoError(t, ft.UnmarshalText([]byte("Decimal")))
	assert.Equal(t, typecheck.Decimal, ft)
	assert.Error(t, ft.UnmarshalText([]byte("float32")))
	assert.Equal(t, "float64", typecheck.Float64.String())
}
