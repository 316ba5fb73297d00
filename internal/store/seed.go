package store

import (
	"fmt"

	"github.com/shershen08/playsync/internal/catalog"
)

func placeholderImage(n int) string {
	return fmt.Sprintf("https://via.placeholder.com/300x300/1DB954/FFFFFF?text=Track+%d", n)
}

// seedTracks is the demo catalog every playlist id resolves to.
var seedTracks = []catalog.Item{
	{ID: "track_1", Title: "Bohemian Rhapsody", Artist: "Queen", Album: "A Night at the Opera", DurationMs: 354000},
	{ID: "track_2", Title: "Hotel California", Artist: "Eagles", Album: "Hotel California", DurationMs: 391000},
	{ID: "track_3", Title: "Stairway to Heaven", Artist: "Led Zeppelin", Album: "Led Zeppelin IV", DurationMs: 482000},
	{ID: "track_4", Title: "Imagine", Artist: "John Lennon", Album: "Imagine", DurationMs: 183000},
	{ID: "track_5", Title: "Sweet Child O' Mine", Artist: "Guns N' Roses", Album: "Appetite for Destruction", DurationMs: 356000},
	{ID: "track_6", Title: "Billie Jean", Artist: "Michael Jackson", Album: "Thriller", DurationMs: 294000},
	{ID: "track_7", Title: "Like a Rolling Stone", Artist: "Bob Dylan", Album: "Highway 61 Revisited", DurationMs: 366000},
	{ID: "track_8", Title: "Smells Like Teen Spirit", Artist: "Nirvana", Album: "Nevermind", DurationMs: 301000},
	{ID: "track_9", Title: "What's Going On", Artist: "Marvin Gaye", Album: "What's Going On", DurationMs: 233000},
	{ID: "track_10", Title: "Good Vibrations", Artist: "The Beach Boys", Album: "Smiley Smile", DurationMs: 216000},
	{ID: "track_11", Title: "Johnny B. Goode", Artist: "Chuck Berry", Album: "Chuck Berry Is on Top", DurationMs: 161000},
	{ID: "track_12", Title: "Hey Jude", Artist: "The Beatles", Album: "The Beatles", DurationMs: 431000},
	{ID: "track_13", Title: "Purple Rain", Artist: "Prince", Album: "Purple Rain", DurationMs: 518000},
	{ID: "track_14", Title: "Thunder Road", Artist: "Bruce Springsteen", Album: "Born to Run", DurationMs: 296000},
	{ID: "track_15", Title: "Layla", Artist: "Derek and the Dominos", Album: "Layla and Other Assorted Love Songs", DurationMs: 428000},
	{ID: "track_16", Title: "A Day in the Life", Artist: "The Beatles", Album: "Sgt. Pepper's Lonely Hearts Club Band", DurationMs: 335000},
	{ID: "track_17", Title: "Gimme Shelter", Artist: "The Rolling Stones", Album: "Let It Bleed", DurationMs: 271000},
	{ID: "track_18", Title: "The Sound of Silence", Artist: "Simon & Garfunkel", Album: "Sounds of Silence", DurationMs: 227000},
	{ID: "track_19", Title: "Dancing Queen", Artist: "ABBA", Album: "Arrival", DurationMs: 230000},
	{ID: "track_20", Title: "Don't Stop Believin'", Artist: "Journey", Album: "Escape", DurationMs: 251000},
	{ID: "track_21", Title: "I Will Always Love You", Artist: "Whitney Houston", Album: "The Bodyguard", DurationMs: 273000},
	{ID: "track_22", Title: "Hallelujah", Artist: "Jeff Buckley", Album: "Grace", DurationMs: 412000},
	{ID: "track_23", Title: "Wonderwall", Artist: "Oasis", Album: "(What's the Story) Morning Glory?", DurationMs: 258000},
	{ID: "track_24", Title: "Creep", Artist: "Radiohead", Album: "Pablo Honey", DurationMs: 238000},
	{ID: "track_25", Title: "Seven Nation Army", Artist: "The White Stripes", Album: "Elephant", DurationMs: 231000},
}
