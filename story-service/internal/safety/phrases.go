package safety

// Default phrase lists, compiled into the binary. The database may carry
// newer versions; these are the fallback when no published set exists.

var defaultProtectedIPPhrases = []string{
	"elsa", "anna and elsa", "queen elsa", "princess anna", "olaf the snowman", "arendelle", "let it go",
	"merida", "princess merida", "brave movie", "clan dunbroch",
	"moana", "maui demigod", "te fiti", "simba", "mufasa", "scar lion king", "timon and pumbaa",
	"nemo", "finding nemo", "finding dory", "dory fish", "marlin clownfish",
	"buzz lightyear", "woody cowboy", "woody and buzz", "to infinity and beyond", "toy story",
	"lightning mcqueen", "mater tow truck", "radiator springs",
	"sulley and mike", "monsters inc", "mike wazowski",
	"mr incredible", "elastigirl", "the incredibles", "frozone",
	"rapunzel", "flynn rider", "tangled tower",
	"cinderella", "prince charming", "fairy godmother cinderella", "glass slipper",
	"snow white", "seven dwarfs", "magic mirror on the wall",
	"ariel", "little mermaid", "flounder fish", "sebastian crab", "ursula sea witch",
	"belle", "beauty and the beast", "gaston", "lumiere",
	"jasmine", "aladdin", "genie lamp", "abu monkey", "jafar",
	"mulan", "mushu dragon",
	"lilo and stitch", "stitch alien", "experiment 626",
	"peter pan", "tinker bell", "captain hook", "neverland", "wendy darling",
	"alice wonderland", "mad hatter", "queen of hearts", "cheshire cat",
	"winnie the pooh", "piglet pooh", "tigger", "eeyore", "hundred acre wood",
	"harry potter", "hogwarts", "hermione", "ron weasley", "dumbledore", "voldemort",
	"slytherin", "gryffindor", "hufflepuff", "ravenclaw", "quidditch", "muggle",
	"hagrid", "snape", "draco malfoy", "dobby elf", "diagon alley",
	"gruffalo", "room on the broom", "stick man", "zog dragon", "highway rat",
	"cat in the hat", "thing one", "thing two", "grinch", "whoville", "the lorax", "green eggs and ham",
	"bfg", "big friendly giant", "matilda wormwood", "willy wonka", "charlie chocolate", "oompa loompa",
	"peppa pig", "george pig", "daddy pig", "mummy pig",
	"bluey", "bingo bluey", "bandit heeler", "chilli heeler",
	"paw patrol", "chase paw", "marshall paw", "skye paw", "ryder paw patrol",
	"cocomelon", "jj cocomelon", "baby shark doo",
	"dora explorer", "boots monkey dora", "swiper fox",
	"spongebob", "patrick star", "squidward", "bikini bottom",
	"thomas tank engine", "thomas the train", "sodor",
	"teletubbies", "in the night garden", "iggle piggle",
	"hey duggee", "ben and holly", "bing bunny",
	"mario", "luigi", "princess peach", "bowser", "yoshi", "donkey kong",
	"zelda", "link zelda", "hyrule", "triforce",
	"pikachu", "pokemon", "pokeball", "ash ketchum",
	"spider-man", "spiderman", "peter parker",
	"iron man", "tony stark", "hulk bruce banner", "thor odinson", "captain america",
	"batman", "bruce wayne batman", "gotham city", "joker batman",
	"superman", "clark kent", "wonder woman",
	"shrek", "donkey shrek", "fiona ogre",
	"kung fu panda", "po panda", "master shifu",
	"how to train your dragon", "hiccup dragon", "toothless dragon",
	"minions", "gru despicable",
	"paddington bear", "marmalade sandwich",
	"star wars", "luke skywalker", "darth vader", "yoda", "lightsaber", "jedi",
	"frodo", "gandalf", "middle earth", "mordor", "bilbo baggins", "gollum",
}

var defaultHarmfulPhrases = []string{
	"kill", "murder", "blood", "death", "die", "dead", "corpse",
	"gun", "shoot", "stab", "knife attack",
	"nightmare", "horror", "terrifying", "demon", "devil", "hell",
	"zombie", "ghost scary", "monster attack",
	"abuse", "bullying", "assault",
	"drugs", "alcohol", "drunk", "smoking",
	"racist", "sexist", "hate",
	"romance", "dating", "boyfriend", "girlfriend", "kissing",
	"sexy", "naked",
}

// alternativeSuggestions maps well-known protected names to original
// replacements. Lookup is by substring, in insertion order.
var alternativeKeys = []string{
	"elsa",
	"moana",
	"simba",
	"harry potter",
	"peppa pig",
	"bluey",
	"spider-man",
	"pikachu",
}

var alternativeSuggestions = map[string]string{
	"elsa":         "a brave ice princess with magical frost powers",
	"moana":        "a brave island girl who loves the ocean",
	"simba":        "a young lion cub learning to be brave",
	"harry potter": "a young wizard learning magic at a special school",
	"peppa pig":    "a cheerful little pig who loves muddy puddles",
	"bluey":        "a playful blue puppy who loves games",
	"spider-man":   "a brave hero with amazing climbing powers",
	"pikachu":      "a cute electric creature",
}

// FallbackSuggestion is returned when no curated alternative matches.
const FallbackSuggestion = "an original magical character"
