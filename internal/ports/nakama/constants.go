package nakama

const (
	// RpcOpenCart finds the caller's running cart match or starts one.
	RpcOpenCart = "open_cart"
	// RpcLoadSave returns the caller's saved cart without joining a match.
	RpcLoadSave = "load_save"
	// RpcResetSave wipes the caller's save and resets a live cart.
	RpcResetSave = "reset_save"

	// MatchNameCart is the authoritative match handler name registered with Nakama.
	MatchNameCart = "chillista_cart"

	// MatchLabelGame tags cart matches in label queries.
	MatchLabelGame = "chillista"

	// MatchSignalReset asks a live cart to start over after its save was deleted.
	MatchSignalReset = "reset"
)

// Storage and leaderboard identifiers.
const (
	SaveCollection = "saves"
	SaveKey        = "cart_v1"

	LeaderboardDailyEarnings = "chillista_daily_earnings"
	LeaderboardReputation    = "chillista_reputation"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpBrew        int64 = 1
	OpSwitchMode  int64 = 2
	OpServe       int64 = 3
	OpTrash       int64 = 4
	OpBuy         int64 = 5
	OpBuyUpgrade  int64 = 6
	OpTalk        int64 = 7
	OpChoose      int64 = 8
	OpRelax       int64 = 9
	OpNewDay      int64 = 10
	OpTravel      int64 = 11
	OpPause       int64 = 12
	OpResume      int64 = 13
	OpSave        int64 = 14
	OpSettings    int64 = 15
	OpDebug       int64 = 16
	OpSmallTalk   int64 = 17
	OpUpsell      int64 = 18
	OpStartGame   int64 = 19
	OpSetDarkMode int64 = 20

	// Server -> Client events
	OpStateSnapshot int64 = 101
	OpEvent         int64 = 102
	OpError         int64 = 103
)
