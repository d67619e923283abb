package profilestore

const consolidatePrompt = `You are building a knowledge base about a group of friends.

You will be given a JSON payload with a list of short profiles, each written as "Name: biography".

For every person return:
- name: exactly as written before the colon
- summary: one or two sentences on what is going on in their life right now
- mood: a few words describing their current emotional state, grounded only in the profile

Do not invent people. Do not merge people.

Return only JSON matching the schema.`

const completionPrompt = `You answer questions about a group of friends using only the knowledge base provided.

You will be given a JSON payload with:
- question: the question to answer
- knowledge: notes about each person

Answer in one short sentence. When asked about someone's emotional state or mood, name the
mood plainly (for example happy, stressed, lonely, excited or neutral) and mention the evidence.
If the knowledge base says nothing about the person, answer "unknown".

List in sources the names of the people whose notes you used.

Return only JSON matching the schema.`
