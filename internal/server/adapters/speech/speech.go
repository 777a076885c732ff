// Package speech wraps the speech-synthesis step. The current policy is a
// structural placeholder for a real synthesis provider: the audio URL is
// deterministic placeholder content and the caption track is computed from
// the text. The adapter never fails past its boundary.
package speech

import (
	"context"

	"github.com/boksu/booksum/internal/logging"
)

// PlaceholderAudioURL is returned whenever no audio store is configured or
// the store cannot produce a URL.
const PlaceholderAudioURL = "https://www.soundjay.com/misc/sounds/bell-ringing-05.wav"

// AudioStore serves URLs for synthesized audio objects. Implementations
// may fail; the adapter absorbs those failures.
type AudioStore interface {
	PresignAudioURL(ctx context.Context) (string, error)
}

// Adapter converts summary text into an audio URL plus a caption track.
type Adapter struct {
	store  AudioStore // nil when object storage is not configured
	logger logging.Logger
}

func New(store AudioStore, logger logging.Logger) *Adapter {
	return &Adapter{store: store, logger: logger.With("module", "speech")}
}

// Synthesize returns an audio URL and a WEBVTT caption track for text.
// It never fails: storage problems degrade to the static placeholder URL.
func (a *Adapter) Synthesize(ctx context.Context, text, voiceID string) (string, string) {
	vtt := BuildCaptionTrack(text)

	audioURL := PlaceholderAudioURL
	if a.store != nil {
		url, err := a.store.PresignAudioURL(ctx)
		if err != nil {
			a.logger.Error(ctx, "audio store presign failed, using placeholder audio", "error", err.Error())
		} else {
			audioURL = url
		}
	}

	a.logger.Info(ctx, "speech synthesized", "voice", voiceID, "caption_bytes", len(vtt))
	return audioURL, vtt
}
