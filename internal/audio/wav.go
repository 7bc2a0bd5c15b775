package audio

import (
	"encoding/binary"
	"math"
	"os"
)

// Float32ToPCM16 clamps and quantizes float samples to 16-bit PCM.
func Float32ToPCM16(src []float32) []int16 {
	if len(src) == 0 {
		return nil
	}
	dst := make([]int16, len(src))
	for i, sample := range src {
		v := float64(sample)
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		dst[i] = int16(math.Round(v * 32767))
	}
	return dst
}

// PCM16ToFloat32 converts 16-bit PCM samples into the [-1, 1] float range.
func PCM16ToFloat32(src []int16) []float32 {
	const scale = 1.0 / 32768.0
	out := make([]float32, len(src))
	for i, s := range src {
		out[i] = float32(float64(s) * scale)
	}
	return out
}

// WritePCM16WAV writes mono 16-bit PCM samples as a minimal RIFF/WAVE file.
// Backends that bridge to external tools hand audio over in this form.
func WritePCM16WAV(path string, samples []int16, sampleRate int) error {
	if sampleRate <= 0 {
		sampleRate = 16000
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	dataSize := len(samples) * 2
	riffSize := 36 + dataSize
	byteRate := sampleRate * 2
	blockAlign := 2

	header := make([]byte, 44)
	copy(header[0:], []byte("RIFF"))
	binary.LittleEndian.PutUint32(header[4:], uint32(riffSize))
	copy(header[8:], []byte("WAVEfmt "))
	binary.LittleEndian.PutUint32(header[16:], 16)
	binary.LittleEndian.PutUint16(header[20:], 1)
	binary.LittleEndian.PutUint16(header[22:], 1)
	binary.LittleEndian.PutUint32(header[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:], 16)
	copy(header[36:], []byte("data"))
	binary.LittleEndian.PutUint32(header[40:], uint32(dataSize))

	if _, err := file.Write(header); err != nil {
		return err
	}

	payload := make([]byte, len(samples)*2)
	for i, sample := range samples {
		binary.LittleEndian.PutUint16(payload[i*2:], uint16(sample))
	}
	if _, err := file.Write(payload); err != nil {
		return err
	}

	return nil
}
