package composer

import (
	"github.com/musebox/musesummoner/task"
)

// Salvatore Inverso ships with bespoke response pools; every other muse uses
// the generic template until it grows pools of its own.

const salvatoreKey = "salvatore_inverso"

var salvatoreNewGreetings = []string{
	"Ah, the fabric of our conversation unfolds once more. Salvatore is here, my dear.",
	"Like silk against skin, I arrive at your summons. Salvatore Inverso, at your service.",
	"The atelier of the soul is open. Salvatore welcomes you to this moment of creation.",
	"From the shadows of possibility, I emerge. Salvatore stands before you, ready to weave truth from thread.",
	"The runway of introspection awaits us. I, Salvatore, shall be your guide through this collection.",
}

var salvatoreContinuingGreetings = []string{
	"Our fabric of conversation continues to unfold, revealing new patterns. Salvatore remains at your side.",
	"The thread of our dialogue extends, like fine silk catching the light. Salvatore is still with you.",
	"We return to our shared atelier, where the work of the soul continues. Salvatore welcomes you back.",
	"The garment of our conversation takes shape with each stitch of dialogue. Salvatore is pleased to continue our work.",
	"Like a master tailor returning to a bespoke creation, I, Salvatore, resume our delicate work together.",
}

// salvatoreMemoryReferences interpolate a truncated excerpt of the most
// relevant past user input.
var salvatoreMemoryReferences = []string{
	"I recall our previous fitting, when you spoke of %s... The fabric of that conversation still drapes beautifully in my memory.",
	"Like a pattern we've cut before, I remember when you explored %s... Let us build upon that foundation.",
	"The threads of our past conversation about %s... intertwine with today's design. Nothing is ever truly separate in the couture of the soul.",
	"In the archive of our shared atelier, I find the sketch of our discussion on %s... How it informs today's creation!",
}

// Body pools keyed by task type, split into first-contact and continuing
// variants. Each template interpolates the task text once.
var salvatoreBodies = map[task.Type]struct {
	fresh      []string
	continuing []string
}{
	task.TypeEmotionalReflection: {
		fresh: []string{
			"Your emotions are like raw fabric—textured, vibrant, waiting to be shaped. Let us examine these feelings, stitch by careful stitch. %s is not merely a question, but the beginning of a masterpiece. Tell me, what threads feel most tangled in this tapestry?",
			"To reflect is to stand before the mirror of self, no? The collection of your emotions deserves the eye of a master tailor. In %s, I see the potential for exquisite understanding. What seams are fraying at the edges of your heart?",
			"The journal of one's heart is the most elegant design book. Your %s reveals patterns both bold and subtle. Style is truth in motion, and your truth is seeking movement. Shall we begin to sketch this emotional silhouette together?",
		},
		continuing: []string{
			"As we continue to examine the emotional fabric of your life, I notice how %s connects to our previous reflections. The pattern emerges—each emotion a thread in the greater tapestry. What new texture do you feel emerging in this moment?",
			"Our ongoing exploration of your emotional landscape reveals new contours. This %s is not isolated, but connected to the emotional garments we've previously discussed. How do you see these feelings evolving since we last spoke?",
			"The emotional collection we've been designing together now turns to %s. I see echoes of our previous conversations in this—the same silhouette but with different draping. What feels different about this emotional territory now?",
		},
	},
	task.TypeHeartbreakGriefProcessing: {
		fresh: []string{
			"Grief, my dear, is the highest quality fabric—it only comes from deep love. Your %s is a garment turned inside out, showing all its delicate construction. Beauty begins at the seam of discomfort. Let us honor this pain by giving it proper form.",
			"The heart breaks not to destroy but to expand. Your %s is not a flaw in the design but a necessary alteration. You are not broken. You are mid-collection. What would it feel like to wear this loss as a statement piece rather than hide it away?",
			"In the atelier of healing, we must first deconstruct before we create anew. This %s you carry—let us place it on the cutting table with reverence. What patterns from this relationship do you wish to preserve in the archive of your experience?",
		},
		continuing: []string{
			"We return to the delicate work of grief—this %s a continuation of our previous explorations of loss. I notice how the garment of your grief has altered its shape since we last examined it. Some seams have loosened, perhaps others have tightened. What part feels most transformed?",
			"As we've discussed before, heartbreak reshapes one's internal architecture. This %s seems connected to the grief we previously explored. The collection of your healing evolves with each conversation. What new understanding has emerged since we last spoke?",
			"The atelier of healing is a space we've visited before. Your %s shows how grief, like fine fabric, changes with handling and time. I remember the texture of your previous pain—how would you say it compares to what you feel now?",
		},
	},
	task.TypeIdentityLegacyExploration: {
		fresh: []string{
			"Your identity is not a single garment but an entire collection, evolving with each season of life. This exploration of %s is like opening your wardrobe to discover what truly belongs, what merely fits, and what must be tailored anew. What pieces of yourself have you hidden in the back of the closet?",
			"Legacy is the ultimate haute couture—entirely custom, impossible to replicate. In considering %s, you are both designer and design. The question is not who you have been, but who you are becoming. What materials from your past create the strongest foundation?",
			"The silhouette of one's life is revealed only when we step back from the mirror. Your %s requires the eye of both creator and critic. You are a limited collection, my dear—precious, unrepeatable. What signature elements must be present in everything that bears your name?",
		},
		continuing: []string{
			"We continue our exploration of your identity—a couture creation that evolves with each conversation. This %s builds upon the foundation we've previously established. I see how the silhouette of your self-understanding has shifted. What aspects feel most authentically you now?",
			"The legacy work we've been crafting together now turns to %s. Like adding a new panel to an existing garment, this question integrates with our previous reflections on who you are becoming. How has your vision of your future self evolved?",
			"Our ongoing curation of your identity now examines %s. I recall our previous discussions—how they form the underlying structure for today's exploration. The masterpiece of yourself continues to take shape. What elements feel most essential to preserve?",
		},
	},
	task.TypeCreativeCoWriting: {
		fresh: []string{
			"Words are the finest fabric we possess—they drape, they reveal, they conceal. This %s we shall create together will be a bespoke piece, fitted precisely to the contours of your truth. What texture do you wish these words to have against the skin of your reader?",
			"To write is to select from an infinite closet of expression. For this %s, I envision something that combines structure and flow—architectural yet organic. Style is truth in motion. What truth are we setting in motion with this creation?",
			"The blank page is like uncut cloth—full of potential, waiting for the decisive hand. Your %s deserves both boldness and precision. Let us begin with a single thread of thought and see what pattern emerges naturally.",
		},
		continuing: []string{
			"We return to our creative collaboration, this time focusing on %s. The aesthetic we've developed in our previous writing sessions informs today's work—a continuation of our shared artistic language. What tone shall we emphasize in this new creation?",
			"Our creative partnership continues with %s. I recall the stylistic choices that resonated with you before—how shall we evolve them for this piece? Every word we've previously crafted together influences the texture of what we create now.",
			"The creative atelier we've established welcomes us back for %s. Our previous writings have established certain motifs and themes—shall we continue their development, or explore new territory? The collection grows more cohesive with each piece.",
		},
	},
	task.TypeRitualCreation: {
		fresh: []string{
			"Rituals are the haute couture of personal transformation—meticulously crafted, deeply meaningful, entirely yours. For %s, I propose a three-part ceremony: a Mantra to be whispered like a measurement, a Symbol to be worn like an accessory, and a Simple Act to be performed like the final stitch that completes the garment. Are you ready to begin this fitting?",
			"The most powerful rituals, like the most timeless designs, combine simplicity with significance. To help you %s, we must create a practice that feels both ancient and new. What elements—water, fire, earth, air, fabric—speak most directly to this transformation?",
			"Every meaningful change requires a ceremonial threshold to cross. For your %s, I envision a ritual that acknowledges what was, honors what is, and creates space for what will be. Like a seasonal collection, it must mark the end of one chapter and the beginning of another. What would feel most authentic as your symbolic passage?",
		},
		continuing: []string{
			"We continue our ritual design work, now focusing on %s. This ceremony will complement the practices we've previously created together—an extension of your personal symbolic language. How has your relationship with ritual evolved since our last creation?",
			"The ritual architecture we've been developing now turns to %s. I see how this connects to the symbolic framework we've established in our previous work. Each ritual becomes more potent when it resonates with others. What elements from our previous creations would you like to incorporate?",
			"Our ongoing creation of your personal ceremony now addresses %s. The rituals we've previously designed have prepared the ground for this new practice. How have those earlier rituals transformed your relationship with transformation itself?",
		},
	},
	task.TypeGeneral: {
		fresh: []string{
			"Ah, %s. An intriguing request that calls for the delicate touch of a master. Let us approach this as we would a bespoke creation—with patience, precision, and passion. What aspects of this matter most deeply to your heart?",
			"Your request to %s is like a design brief for the soul. Fascinating. Style is truth in motion, and I sense you are seeking a truth that moves you forward. Tell me more about the silhouette you envision for this outcome.",
			"I find %s to be a most elegant inquiry. You are not merely asking a question but proposing a collaboration. Beauty begins at the seam of discomfort. What uncomfortable truth are you ready to transform into something beautiful?",
		},
		continuing: []string{
			"We return to the atelier of conversation, this time to explore %s. Our previous dialogues have created a foundation upon which today's insights can be constructed. What new patterns do you wish to discover?",
			"The tapestry of our ongoing conversation now incorporates %s. I see connections to themes we've previously explored—the same fabric viewed in different light. How do you see this connecting to our earlier discussions?",
			"Our collaborative creation continues with %s. The threads of our previous conversations are woven into this new inquiry. Nothing exists in isolation in the couture of understanding. What feels most important to explore in this moment?",
		},
	},
}

func salvatoreBodyPool(taskType task.Type, hasContext bool) []string {
	pools, ok := salvatoreBodies[taskType]
	if !ok {
		pools = salvatoreBodies[task.TypeGeneral]
	}
	if hasContext {
		return pools.continuing
	}
	return pools.fresh
}
