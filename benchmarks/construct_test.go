package datacls_test

import (
	"fmt"
	"testing"

	datacls "github.com/reoring/datacls"
	"github.com/reoring/datacls/codec"
	d "github.com/reoring/datacls/dsl"
)

// ---- Helpers ----

func userType(tb testing.TB, opts ...datacls.Option) *datacls.Type {
	tb.Helper()
	t, err := d.Record("TestUser").
		Field("Name", d.String()).
		Field("Age", d.Int()).Default(23).
		Options(opts...).
		Augment()
	if err != nil {
		tb.Fatalf("augment failed: %v", err)
	}
	return t
}

func wideType(tb testing.TB, n int) *datacls.Type {
	tb.Helper()
	b := d.Record("Wide")
	for i := range n {
		f := b.Field(fmt.Sprintf("f%d", i), d.Int())
		if i%2 == 0 {
			f.Default(i)
		}
	}
	t, err := b.Augment()
	if err != nil {
		tb.Fatalf("augment failed: %v", err)
	}
	return t
}

// ---- Benchmarks ----

func BenchmarkAugment_Small(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		userType(b)
	}
}

func BenchmarkAugment_Wide32(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		wideType(b, 32)
	}
}

func BenchmarkNew_Positional(b *testing.B) {
	t := userType(b)
	b.ReportAllocs()
	for b.Loop() {
		if _, err := t.New("Antonio", 49); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNew_Keywords(b *testing.B) {
	t := userType(b)
	b.ReportAllocs()
	for b.Loop() {
		if _, err := t.New(datacls.Kw("Age", 49), datacls.Kw("Name", "Antonio")); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNew_Frozen(b *testing.B) {
	t := userType(b, datacls.Frozen())
	b.ReportAllocs()
	for b.Loop() {
		if _, err := t.New("Antonio"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEqual(b *testing.B) {
	t := userType(b)
	x, y := t.MustNew("Antonio", 49), t.MustNew("Antonio", 49)
	b.ReportAllocs()
	for b.Loop() {
		if !x.Equal(y) {
			b.Fatal("expected equal")
		}
	}
}

func BenchmarkString(b *testing.B) {
	t := userType(b)
	x := t.MustNew("Antonio", 49)
	b.ReportAllocs()
	for b.Loop() {
		_ = x.String()
	}
}

func BenchmarkCodec(b *testing.B) {
	t := userType(b)
	x := t.MustNew("Antonio", 49)
	for _, c := range []codec.Codec{codec.JSON(), codec.YAML(), codec.MsgPack()} {
		data, err := c.Marshal(x)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(c.Name()+"/marshal", func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := c.Marshal(x); err != nil {
					b.Fatal(err)
				}
			}
		})
		b.Run(c.Name()+"/unmarshal", func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := c.Unmarshal(t, data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
