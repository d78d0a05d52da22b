// Package config loads server configuration from the environment.
//
// Every value has a working default, so the server starts with no
// environment at all. Malformed numeric values fall back to their
// defaults rather than aborting startup.
//
// Variables:
//
//	HOST          - Listen host (default "localhost")
//	PORT          - Listen port (default 3000)
//	PUBLIC_DIR    - Static client directory (default "public")
//	MAP_SIZE      - Playfield half-extent (default 3800)
//	FOOD_COUNT    - Food items per room (default 500)
//	ROOM_CAPACITY - Max players per room (default 20)
package config
