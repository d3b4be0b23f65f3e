package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// WriteWAV wraps raw interleaved PCM16LE data in a standard RIFF/WAVE
// container so consumers without a raw-PCM player get a playable file.
func WriteWAV(w io.Writer, raw []byte, sampleRate, channels int) error {
	if sampleRate <= 0 || channels <= 0 {
		return fmt.Errorf("invalid wav parameters: rate=%d channels=%d", sampleRate, channels)
	}

	byteRate := sampleRate * channels * BytesPerSample
	blockAlign := channels * BytesPerSample

	var header bytes.Buffer
	header.WriteString("RIFF")
	binary.Write(&header, binary.LittleEndian, uint32(36+len(raw)))
	header.WriteString("WAVE")
	header.WriteString("fmt ")
	binary.Write(&header, binary.LittleEndian, uint32(16)) // PCM fmt chunk size
	binary.Write(&header, binary.LittleEndian, uint16(1))  // PCM format
	binary.Write(&header, binary.LittleEndian, uint16(channels))
	binary.Write(&header, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&header, binary.LittleEndian, uint32(byteRate))
	binary.Write(&header, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&header, binary.LittleEndian, uint16(16)) // bits per sample

	header.WriteString("data")
	binary.Write(&header, binary.LittleEndian, uint32(len(raw)))

	if _, err := w.Write(header.Bytes()); err != nil {
		return fmt.Errorf("failed to write wav header: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("failed to write wav data: %w", err)
	}
	return nil
}

// EncodeWAV returns the clip's raw PCM wrapped in a WAVE container.
func EncodeWAV(clip *Clip) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteWAV(&buf, clip.Raw, clip.SampleRate, clip.Channels()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
