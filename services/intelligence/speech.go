package ai

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

// CloudSpeechTranscriber uses Google Cloud Speech-to-Text instead of Gemini.
type CloudSpeechTranscriber struct {
	client       *speech.Client
	languageCode string
}

func NewCloudSpeechTranscriber(ctx context.Context, credentialsFile, languageCode string) (*CloudSpeechTranscriber, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize speech client: %w", err)
	}
	return &CloudSpeechTranscriber{client: client, languageCode: languageCode}, nil
}

func (s *CloudSpeechTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	cfg, err := recognitionConfig(audio, mimeType)
	if err != nil {
		return "", err
	}
	cfg.LanguageCode = s.languageCode

	resp, err := s.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: cfg,
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", fmt.Errorf("speech recognition failed: %w", err)
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			transcript.WriteString(result.Alternatives[0].Transcript + " ")
		}
	}
	return strings.TrimSpace(transcript.String()), nil
}

func (s *CloudSpeechTranscriber) Close() error {
	return s.client.Close()
}

// recognitionConfig picks the encoding from the upload's MIME type. WAV
// uploads carry their sample rate in the header.
func recognitionConfig(audio []byte, mimeType string) (*speechpb.RecognitionConfig, error) {
	base := strings.ToLower(strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0]))
	switch base {
	case "audio/webm":
		return &speechpb.RecognitionConfig{Encoding: speechpb.RecognitionConfig_WEBM_OPUS, SampleRateHertz: 48000}, nil
	case "audio/ogg":
		return &speechpb.RecognitionConfig{Encoding: speechpb.RecognitionConfig_OGG_OPUS, SampleRateHertz: 48000}, nil
	case "audio/flac", "audio/x-flac":
		return &speechpb.RecognitionConfig{Encoding: speechpb.RecognitionConfig_FLAC}, nil
	case "audio/wav", "audio/x-wav", "audio/wave":
		header, err := parseWaveHeader(audio)
		if err != nil {
			return nil, err
		}
		return &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   int32(header.SampleRate),
			AudioChannelCount: int32(header.NumChannels),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported audio type %q", mimeType)
	}
}

type waveHeader struct {
	RiffTag       [4]byte
	FileSize      uint32
	WaveTag       [4]byte
	FmtTag        [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

func parseWaveHeader(data []byte) (*waveHeader, error) {
	if len(data) < 44 {
		return nil, errors.New("invalid WAV header length")
	}

	var header waveHeader
	if err := binary.Read(bytes.NewReader(data[:36]), binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if string(header.RiffTag[:]) != "RIFF" || string(header.WaveTag[:]) != "WAVE" {
		return nil, errors.New("not a RIFF/WAVE file")
	}
	if header.AudioFormat != 1 || header.BitsPerSample != 16 {
		return nil, fmt.Errorf("expected 16-bit PCM, got format %d with %d bits", header.AudioFormat, header.BitsPerSample)
	}
	return &header, nil
}
