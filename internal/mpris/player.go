//go:build linux

package mpris

import (
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/shershen08/playsync/internal/playback"
)

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	service playback.Service
}

func (p *playerAdapter) Next() error {
	return p.skip(1)
}

func (p *playerAdapter) Previous() error {
	return p.skip(-1)
}

func (p *playerAdapter) skip(offset int) error {
	v := p.service.View()
	idx := v.Queue.IndexOf(v.State.SelectedItemID)
	if idx < 0 {
		return nil
	}
	it, ok := v.Queue.At(idx + offset)
	if !ok {
		return nil
	}
	return p.service.SelectItem(it.ID)
}

func (p *playerAdapter) Pause() error {
	return p.service.Pause()
}

func (p *playerAdapter) PlayPause() error {
	return p.service.Toggle()
}

// Stop pauses; a synced session has no stopped state.
func (p *playerAdapter) Stop() error {
	return p.service.Pause()
}

func (p *playerAdapter) Play() error {
	v := p.service.View()
	if !v.State.HasSelection() {
		first, ok := v.Queue.At(0)
		if !ok {
			return nil
		}
		return p.service.SelectItem(first.ID)
	}
	return p.service.Play()
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	v := p.service.View()
	if !v.State.HasSelection() {
		return nil
	}
	return p.service.Seek(max(v.State.PositionMs+microsToMs(offset), 0))
}

// SetPosition is ignored when trackID is not the current item, as MPRIS
// requires.
func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	v := p.service.View()
	if !v.State.HasSelection() || trackID != string(trackObjectPath(v.QueueID.String(), v.State.SelectedItemID)) {
		return nil
	}
	return p.service.Seek(max(microsToMs(position), 0))
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(p.service.View()), nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	return metadata(p.service.View()), nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return int64(msToMicros(p.service.View().State.PositionMs)), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	v := p.service.View()
	idx := v.Queue.IndexOf(v.State.SelectedItemID)
	return idx >= 0 && idx < v.Queue.Len()-1, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	v := p.service.View()
	return v.Queue.IndexOf(v.State.SelectedItemID) > 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return !p.service.View().Queue.IsEmpty(), nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.service.View().State.HasSelection(), nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}
