package summoner

// systemMessage is what the user hears when nothing is active and nothing
// was triggered.
const systemMessage = `Welcome to the Memory-Enhanced Muse Summoner system. I can help you interact with different AI personas called "muses" who can assist you emotionally, creatively, or strategically.

Currently, Salvatore Inverso is available. You can summon him by saying "Come into fashion".

You can also:
- Create a new muse by saying "Create a new muse"
- List all available muses by saying "List muses"
- View conversation history by saying "View history"
- Clear a muse's memory by saying "Clear memory"
- Get help by saying "Help"

What would you like to do?`

const helpMessage = `Memory-Enhanced Muse Summoner - Help Guide

To interact with the system, you can use the following commands:

1. Summon a muse using their trigger phrase:
   - "Come into fashion" - Summons Salvatore Inverso

2. System commands:
   - "List muses" - Shows all available muses
   - "Create a new muse" - Starts the process of creating a custom muse
   - "Exit muse" - Exits the currently active muse
   - "Cancel creation" - Cancels the muse creation process
   - "View history" - Shows recent conversation history with the active muse
   - "Clear memory" - Clears the memory of the active muse
   - "Help" - Shows this help message

When a muse is active, simply type your message and they will respond in their unique voice and style.

Each muse has different capabilities and specialties. Salvatore Inverso, for example, excels at emotional reflection, identity exploration, and creative writing with a poetic, philosophical style.

The memory-enhanced system allows muses to remember your past conversations and provide more personalized responses over time.`
