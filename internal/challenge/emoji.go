package challenge

// targetEmojis are the animals click-target options are drawn on.
var targetEmojis = []string{
	"🐶", "🐱", "🐭", "🐹", "🐰", "🦊", "🐻", "🐼", "🐨", "🐯", "🦁", "🐮", "🐷", "🐸", "🐵", "🐔", "🐧", "🐦", "🐤",
	"🦆", "🦅", "🦉", "🦇", "🐺", "🐗", "🐴", "🦄", "🐝", "🐛", "🦋", "🐌", "🐞", "🐜", "🦟", "🦗", "🕷️",
}

// clickEmojis are the reaction-game targets.
var clickEmojis = []string{
	"⚽️", "🍎", "⭐", "🚗", "🎈", "🎁", "🐶", "🐱", "🌷", "🌞", "💎", "🍔", "🍕", "🍓", "🍉", "🍍", "🐙", "🦑", "🦐",
	"🦞", "🦀", "🐡", "🐠", "🐟", "🐬", "🐳", "🐋", "🦈", "🐊", "🐢", "🦎", "🐍", "🐴", "🦄", "🦓", "🦌", "🐮", "🐂",
	"🐃", "🐄", "🐷", "🐖", "🐗", "🐏", "🐑", "🐐", "🐪", "🐫", "🕊️", "🦢", "🦜", "🧜‍♀️", "🧜‍♂️", "👖", "👕", "👗",
	"🏠", "🏰", "✈️", "🚀", "🚁", "🎸", "🎹", "🎺", "🥁", "📱", "💻", "🖥️", "⌚️", "⏰", "💡", "🔦", "🔨", "🛠️", "🔑",
	"🔒", "🔓", "🔔", "📚", "📖", "📝", "✏️", "🖍️", "🖌️", "🎨", "🎬", "🎤", "🎧", "🎼", "🎵", "🎶", "💰", "💵", "💶",
	"👑", "🎩", "🎓", "💄", "💍", "💼", "☂️", "🌂", "🌈", "🌍", "🌎", "🌏", "🌕", "🌖", "🌗", "🏀", "🏐", "🏈", "⚾️",
	"🎾", "🎱", "♟️", "🎲", "🎳", "🥊", "🥋", "🥅", "⛳️", "⛸️", "🎣", "🎽", "🎿", "⛷️", "🏂", "🤺", "🏇", "🧘", "🏄",
	"🏊", "🤽", "🚣", "🧗", "🚵", "🚴", "🏆", "🥇", "🥈", "🥉", "🏅", "🎖️",
}

// countingEmojis are the objects shown in counting questions.
var countingEmojis = []string{"🍎", "🍊", "🍓", "🍌", "⚽️", "🚗", "🎈", "⭐"}
