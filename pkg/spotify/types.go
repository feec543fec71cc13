package spotify

import (
	"time"
)

// Token represents the decoded reply of a token exchange or refresh.
type Token struct {
	AccessToken  string    // Bearer token for API requests
	RefreshToken string    // Refresh token in effect after the exchange
	Scope        string    // Space-separated scopes granted
	TokenType    string    // Typically "Bearer"
	ExpiresIn    int       // Lifetime of AccessToken in seconds
	Expiry       time.Time // Absolute expiry derived from ExpiresIn
}

// AuthURLOptions holds the optional parameters of an authorize URL.
type AuthURLOptions struct {
	State      string // Optional: opaque value echoed back to the redirect URI
	Scope      string // Optional: overrides the configured scope
	ShowDialog bool   // Optional: force the consent dialog even if already approved
}

// GetAlbumParams holds parameters for AlbumService.Get.
type GetAlbumParams struct {
	AlbumID string // Required: Spotify album ID
	Market  string // Optional: ISO 3166-1 alpha-2 country code
}

// GetSeveralAlbumsParams holds parameters for AlbumService.GetSeveral.
type GetSeveralAlbumsParams struct {
	IDs    []string // Required: up to 20 album IDs
	Market string   // Optional
}

// GetAlbumTracksParams holds parameters for AlbumService.GetTracks.
type GetAlbumTracksParams struct {
	AlbumID string // Required
	Market  string // Optional
	Limit   int    // Optional: passed through verbatim
	Offset  int    // Optional: passed through verbatim
}

// GetArtistParams holds parameters for ArtistService.Get.
type GetArtistParams struct {
	ArtistID string // Required
}

// GetSeveralArtistsParams holds parameters for ArtistService.GetSeveral.
type GetSeveralArtistsParams struct {
	IDs []string // Required: up to 50 artist IDs
}

// GetArtistAlbumsParams holds parameters for ArtistService.GetAlbums.
type GetArtistAlbumsParams struct {
	ArtistID      string   // Required
	IncludeGroups []string // Optional: album, single, appears_on, compilation
	Market        string   // Optional
	Limit         int      // Optional
	Offset        int      // Optional
}

// GetArtistTopTracksParams holds parameters for ArtistService.GetTopTracks.
type GetArtistTopTracksParams struct {
	ArtistID string // Required
	Market   string // Optional
}

// PlaybackStateParams holds parameters for PlayerService.GetPlaybackState
// and PlayerService.GetCurrentlyPlaying.
type PlaybackStateParams struct {
	Market          string   // Optional
	AdditionalTypes []string // Optional: track, episode
}

// PlaybackOffset selects where in a context playback starts. Set
// exactly one of Position or URI.
type PlaybackOffset struct {
	Position *int   `json:"position,omitempty"`
	URI      string `json:"uri,omitempty"`
}

// StartPlaybackParams holds parameters for PlayerService.StartPlayback.
type StartPlaybackParams struct {
	DeviceID   string          // Optional: target device, defaults to the active one
	ContextURI string          // Optional: album, artist or playlist URI
	URIs       []string        // Optional: track URIs to play
	Offset     *PlaybackOffset // Optional: only valid with ContextURI
	PositionMS int             // Optional: start position in milliseconds
}

// startPlaybackBody is the JSON body of PUT /me/player/play.
type startPlaybackBody struct {
	ContextURI string          `json:"context_uri,omitempty"`
	URIs       []string        `json:"uris,omitempty"`
	Offset     *PlaybackOffset `json:"offset,omitempty"`
	PositionMS int             `json:"position_ms,omitempty"`
}

// SetVolumeParams holds parameters for PlayerService.SetVolume.
type SetVolumeParams struct {
	VolumePercent int    // Required: 0-100, always sent
	DeviceID      string // Optional
}

// SeekParams holds parameters for PlayerService.Seek.
type SeekParams struct {
	PositionMS int    // Required: always sent
	DeviceID   string // Optional
}

// SetShuffleParams holds parameters for PlayerService.SetShuffle.
type SetShuffleParams struct {
	State    bool   // Required: always sent
	DeviceID string // Optional
}

// RepeatState is the repeat mode of the player.
type RepeatState string

// Repeat modes accepted by PlayerService.SetRepeat.
const (
	RepeatTrack   RepeatState = "track"
	RepeatContext RepeatState = "context"
	RepeatOff     RepeatState = "off"
)

// SetRepeatParams holds parameters for PlayerService.SetRepeat.
type SetRepeatParams struct {
	State    RepeatState // Required
	DeviceID string      // Optional
}

// TransferPlaybackParams holds parameters for PlayerService.TransferPlayback.
type TransferPlaybackParams struct {
	DeviceID string // Required: device to transfer to
	Play     bool   // Optional: start playing on the new device
}

// transferPlaybackBody is the JSON body of PUT /me/player.
type transferPlaybackBody struct {
	DeviceIDs []string `json:"device_ids"`
	Play      bool     `json:"play,omitempty"`
}

// AddToQueueParams holds parameters for PlayerService.AddToQueue.
type AddToQueueParams struct {
	URI      string // Required: track or episode URI
	DeviceID string // Optional
}

// GetPlaylistParams holds parameters for PlaylistService.Get.
type GetPlaylistParams struct {
	PlaylistID      string   // Required
	Market          string   // Optional
	Fields          string   // Optional: field filter expression
	AdditionalTypes []string // Optional
}

// GetPlaylistItemsParams holds parameters for PlaylistService.GetItems.
type GetPlaylistItemsParams struct {
	PlaylistID      string   // Required
	Market          string   // Optional
	Fields          string   // Optional
	Limit           int      // Optional: passed through verbatim
	Offset          int      // Optional: passed through verbatim
	AdditionalTypes []string // Optional
}

// GetCurrentUsersPlaylistsParams holds parameters for
// PlaylistService.GetCurrentUsers.
type GetCurrentUsersPlaylistsParams struct {
	Limit  int // Optional
	Offset int // Optional
}

// SearchParams holds parameters for Client.Search.
type SearchParams struct {
	Q               string   // Required: search query
	Type            []string // Required: album, artist, playlist, track, show, episode, audiobook
	Market          string   // Optional
	Limit           int      // Optional
	Offset          int      // Optional
	IncludeExternal string   // Optional: "audio"
}

// GetUserProfileParams holds parameters for UserService.GetUserProfile.
type GetUserProfileParams struct {
	UserID string // Required
}
