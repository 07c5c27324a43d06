package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16  // 64 KiB
)

// builtinSeeds покрывают основные конструкции грамматики, даже если
// testdata отсутствует.
var builtinSeeds = []string{
	"",
	"float4 main(float4 pos : SV_POSITION) : SV_TARGET { return pos; }\n",
	"RWTexture2D<float4> buf;\n[numthreads(8, 8, 1)]\nvoid main(uint2 i : SV_DispatchThreadID) { buf[i] += 1; }\n",
	"cbuffer C : register(b0) { float4x4 mvp; float4 tint; };\n",
	"struct VSOut { float4 pos : SV_POSITION; float2 uv : TEXCOORD0; };\n",
	"Texture2D tex; SamplerState smp;\nfloat4 main(float2 uv : TEXCOORD0) : SV_TARGET { return tex.Sample(smp, uv); }\n",
	"float4 main() : SV_TARGET { int x = 1, y[3], z = 2; return x + z; }\n",
	"float f(float x) { if (x > 0) { return x; } else { return -x; } }\n",
	"void main() { for (int i = 0; i < 4; i++) { [unroll] while (i) { break; } } }\n",
	"static const float k[2] = { 1.0, 2.0 };\n",
	"float4 main() : SV_TARGET { return float4(1, 2, 3, 4).wzyx; }\n",
	"typedef float2 vec2;\nvec2 g(vec2 a) { return a * 2.0h; }\n",
	"void main() { switch (1) { case 0: break; default: discard; } }\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.hlsl файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if ext := filepath.Ext(path); ext != ".hlsl" && ext != ".hlsli" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return src
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
